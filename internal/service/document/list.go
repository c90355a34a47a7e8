package document

import (
	"context"
	"fmt"
	"time"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// Listing groups the documents visible to a principal into three disjoint
// sets: documents they own, documents actively shared with them, and public
// documents owned by others.
type Listing struct {
	Owned        []domain.Document
	SharedActive []domain.Document
	PublicOthers []domain.Document
}

// List returns the caller's accessible documents. Encryption keys are
// stripped from everything the caller does not own, and PublicOthers is
// capped at the configured public page size.
func (s *Service) List(ctx context.Context) (*Listing, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()

	owned, err := s.docs.ListOwned(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned: %w", err)
	}

	shared, err := s.docs.ListSharedActive(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("list shared: %w", err)
	}
	stripKeys(shared)

	public, err := s.docs.ListPublicOthers(ctx, userID, now, s.publicPageSize)
	if err != nil {
		return nil, fmt.Errorf("list public: %w", err)
	}
	stripKeys(public)

	return &Listing{
		Owned:        owned,
		SharedActive: shared,
		PublicOthers: public,
	}, nil
}

func stripKeys(docs []domain.Document) {
	for i := range docs {
		docs[i].EncryptionKey = nil
		docs[i].AccessList = nil
	}
}
