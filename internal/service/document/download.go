package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// DownloadResult carries decrypted content plus the metadata a transport
// needs to serve it.
type DownloadResult struct {
	Content  []byte
	Title    string
	FileType string
}

// Download fetches and decrypts a document for any principal with read
// access. Decryption happens here; the key never leaves the service for
// non-owners.
func (s *Service) Download(ctx context.Context, documentID uuid.UUID) (*DownloadResult, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	doc, err := s.authorizeRead(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}

	content, err := s.store.Get(ctx, doc.ContentAddress, doc.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("fetch document content: %w", err)
	}

	info := ctxutil.ClientInfoFromCtx(ctx)
	s.recordActivity(ctx, domain.ActivityEntry{
		UserID:     userID,
		DocumentID: &doc.ID,
		Action:     domain.ActionDownload,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
	})

	s.log.InfoContext(ctx, "document downloaded",
		slog.String("document_id", doc.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("bytes", len(content)),
	)

	return &DownloadResult{
		Content:  content,
		Title:    doc.Title,
		FileType: doc.FileType,
	}, nil
}
