package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// Revoke removes the target user's grant on a document the caller owns.
// Revoking a grant that does not exist succeeds as a no-op.
func (s *Service) Revoke(ctx context.Context, input RevokeInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	doc, err := s.docs.GetByID(ctx, input.DocumentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != userID {
		return domain.ErrForbidden
	}

	if err := s.docs.DeleteGrant(ctx, doc.ID, input.TargetUserID); err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}

	targetID := input.TargetUserID
	info := ctxutil.ClientInfoFromCtx(ctx)
	s.recordActivity(ctx, domain.ActivityEntry{
		UserID:     userID,
		DocumentID: &doc.ID,
		Action:     domain.ActionRevoke,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
		Details:    domain.ActivityDetails{RevokedFrom: &targetID},
	})

	s.mirrorRevoke(ctx, doc, targetID)

	s.log.InfoContext(ctx, "access revoked",
		slog.String("document_id", doc.ID.String()),
		slog.String("owner_id", userID.String()),
		slog.String("target_id", targetID.String()),
	)

	return nil
}

func (s *Service) mirrorRevoke(ctx context.Context, doc *domain.Document, targetID uuid.UUID) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		s.log.ErrorContext(ctx, "mirror revoke: load target failed",
			slog.String("document_id", doc.ID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if target.WalletAddress == "" {
		return
	}

	if _, err := s.ledger.RevokeAccess(ctx, doc.ContentAddress, target.WalletAddress); err != nil {
		s.log.WarnContext(ctx, "ledger revoke failed, queued for retry",
			slog.String("document_id", doc.ID.String()),
			slog.String("error", err.Error()),
		)
		s.enqueueMirror(ctx, domain.MirrorTask{
			DocumentID:     doc.ID,
			ContentAddress: doc.ContentAddress,
			Op:             domain.MirrorOpRevoke,
			WalletAddress:  target.WalletAddress,
		})
	}
}
