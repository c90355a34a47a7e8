package document

import (
	"context"
	"fmt"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// Logs returns a document's activity entries, newest first. Only the owner
// and admins may read the trail.
func (s *Service) Logs(ctx context.Context, input LogsInput) ([]domain.ActivityEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.docs.GetByID(ctx, input.DocumentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != userID && !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	entries, err := s.activity.ListByDocument(ctx, doc.ID, s.clampLogLimit(input.Limit))
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}

// UserActivity returns the caller's own audit trail across all documents,
// newest first.
func (s *Service) UserActivity(ctx context.Context, input ActivityInput) ([]domain.ActivityEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.activity.ListByUser(ctx, userID, s.clampLogLimit(input.Limit), input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list user activity: %w", err)
	}
	return entries, nil
}

func (s *Service) clampLogLimit(limit int) int {
	if limit == 0 {
		return DefaultLogLimit
	}
	if limit > s.maxLogEntries {
		return s.maxLogEntries
	}
	return limit
}
