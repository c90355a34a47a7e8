package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// Share grants the target user time-bounded read access to a document the
// caller owns. Re-sharing to the same user replaces the existing grant, so
// a user never holds more than one grant per document.
//
// The grant is committed locally first; mirroring it to the ledger is best
// effort and never undoes the grant.
func (s *Service) Share(ctx context.Context, input ShareInput) (*domain.AccessGrant, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	days := domain.DefaultShareDays
	if input.Days != nil {
		days = *input.Days
	}
	if !domain.ValidShareDays(days) {
		return nil, fmt.Errorf("%w: days must be between %d and %d",
			domain.ErrInvalidDuration, domain.MinShareDays, domain.MaxShareDays)
	}

	doc, err := s.docs.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	if input.TargetUserID == doc.OwnerID {
		return nil, domain.NewValidationError("target_user_id", "owner already has access")
	}

	target, err := s.users.GetByID(ctx, input.TargetUserID)
	if err != nil {
		return nil, fmt.Errorf("get target user: %w", err)
	}

	now := time.Now().UTC()
	grant, err := s.docs.UpsertGrant(ctx, domain.AccessGrant{
		DocumentID: doc.ID,
		UserID:     target.ID,
		GrantedAt:  now,
		ExpiresAt:  now.AddDate(0, 0, days),
	})
	if err != nil {
		return nil, fmt.Errorf("upsert grant: %w", err)
	}

	info := ctxutil.ClientInfoFromCtx(ctx)
	s.recordActivity(ctx, domain.ActivityEntry{
		UserID:     userID,
		DocumentID: &doc.ID,
		Action:     domain.ActionShare,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
		Details: domain.ActivityDetails{
			SharedWith: &target.ID,
			ExpiresAt:  &grant.ExpiresAt,
		},
	})

	s.mirrorGrant(ctx, doc, target, grant.ExpiresAt)

	s.log.InfoContext(ctx, "document shared",
		slog.String("document_id", doc.ID.String()),
		slog.String("owner_id", userID.String()),
		slog.String("target_id", target.ID.String()),
		slog.Int("days", days),
	)

	return &grant, nil
}

func (s *Service) mirrorGrant(ctx context.Context, doc *domain.Document, target *domain.User, expiresAt time.Time) {
	if target.WalletAddress == "" {
		s.log.DebugContext(ctx, "mirror grant skipped, target has no wallet",
			slog.String("document_id", doc.ID.String()),
			slog.String("target_id", target.ID.String()),
		)
		return
	}

	if _, err := s.ledger.GrantAccess(ctx, doc.ContentAddress, target.WalletAddress, expiresAt); err != nil {
		s.log.WarnContext(ctx, "ledger grant failed, queued for retry",
			slog.String("document_id", doc.ID.String()),
			slog.String("error", err.Error()),
		)
		s.enqueueMirror(ctx, domain.MirrorTask{
			DocumentID:     doc.ID,
			ContentAddress: doc.ContentAddress,
			Op:             domain.MirrorOpGrant,
			WalletAddress:  target.WalletAddress,
			ExpiresAt:      &expiresAt,
		})
	}
}
