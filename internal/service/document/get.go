package document

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// Get returns document metadata for any principal with read access. The
// encryption key is included only when the caller owns the document; for
// everyone else it is stripped before the document leaves the service.
func (s *Service) Get(ctx context.Context, documentID uuid.UUID) (*domain.Document, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	doc, err := s.authorizeRead(ctx, documentID, userID)
	if err != nil {
		return nil, err
	}

	if doc.OwnerID != userID {
		doc.EncryptionKey = nil
		doc.AccessList = nil

		info := ctxutil.ClientInfoFromCtx(ctx)
		s.recordActivity(ctx, domain.ActivityEntry{
			UserID:     userID,
			DocumentID: &doc.ID,
			Action:     domain.ActionView,
			IPAddress:  info.IPAddress,
			UserAgent:  info.UserAgent,
		})
	}

	return doc, nil
}

// authorizeRead loads a document and checks read access for userID.
// Denial is reported as ErrAccessDenied without revealing more than the
// document's public flag already does.
func (s *Service) authorizeRead(ctx context.Context, documentID, userID uuid.UUID) (*domain.Document, error) {
	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	if !doc.AccessFor(userID, time.Now().UTC()).Allows() {
		return nil, domain.ErrAccessDenied
	}
	return doc, nil
}
