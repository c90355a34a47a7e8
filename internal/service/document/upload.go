package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/cryptostore"
	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// Upload encrypts and stores a new document owned by the calling user.
//
// The content-store write and the registry insert must both succeed or the
// upload fails outright. Ledger registration runs after the document exists
// locally; its failure leaves the receipt empty and queues a retry.
func (s *Service) Upload(ctx context.Context, input UploadInput) (*domain.Document, error) {
	ownerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	key, err := cryptostore.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate document key: %w", err)
	}

	address, err := s.store.Put(ctx, input.Content, key)
	if err != nil {
		return nil, fmt.Errorf("store document content: %w", err)
	}

	doc, err := s.docs.Create(ctx, &domain.Document{
		ID:             uuid.New(),
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		ContentAddress: address,
		EncryptionKey:  key,
		OwnerID:        ownerID,
		IsPublic:       input.IsPublic,
		FileType:       input.FileType,
		FileSize:       int64(len(input.Content)),
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	info := ctxutil.ClientInfoFromCtx(ctx)
	size := doc.FileSize
	s.recordActivity(ctx, domain.ActivityEntry{
		UserID:     ownerID,
		DocumentID: &doc.ID,
		Action:     domain.ActionUpload,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
		Details:    domain.ActivityDetails{FileSize: &size},
	})

	s.mirrorRegister(ctx, doc)

	s.log.InfoContext(ctx, "document uploaded",
		slog.String("document_id", doc.ID.String()),
		slog.String("owner_id", ownerID.String()),
		slog.Int64("bytes", doc.FileSize),
		slog.Bool("public", doc.IsPublic),
	)

	return doc, nil
}

// mirrorRegister records the new document on the ledger and stores the
// transaction hash. Failures are queued for the reconciliation worker.
func (s *Service) mirrorRegister(ctx context.Context, doc *domain.Document) {
	owner, err := s.users.GetByID(ctx, doc.OwnerID)
	if err != nil {
		s.log.ErrorContext(ctx, "mirror register: load owner failed",
			slog.String("document_id", doc.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if owner.WalletAddress == "" {
		s.log.DebugContext(ctx, "mirror register skipped, owner has no wallet",
			slog.String("document_id", doc.ID.String()),
		)
		return
	}

	receipt, err := s.ledger.RegisterDocument(ctx, doc.ContentAddress, owner.WalletAddress)
	if err != nil {
		s.log.WarnContext(ctx, "ledger register failed, queued for retry",
			slog.String("document_id", doc.ID.String()),
			slog.String("error", err.Error()),
		)
		s.enqueueMirror(ctx, domain.MirrorTask{
			DocumentID:     doc.ID,
			ContentAddress: doc.ContentAddress,
			Op:             domain.MirrorOpRegister,
			WalletAddress:  owner.WalletAddress,
		})
		return
	}

	if err := s.docs.SetLedgerTxHash(ctx, doc.ID, receipt.TxHash); err != nil {
		s.log.ErrorContext(ctx, "store ledger tx hash failed",
			slog.String("document_id", doc.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	doc.LedgerTxHash = receipt.TxHash
}
