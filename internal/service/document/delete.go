package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
	"github.com/docuchain/docuchain-backend/pkg/ctxutil"
)

// Delete destroys a document and all its grants. Permitted for the owner
// and for admins. Audit entries referencing the document are kept, and no
// ledger un-registration is attempted: the ledger keeps its historical
// record.
func (s *Service) Delete(ctx context.Context, documentID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}
	if doc.OwnerID != userID && !ctxutil.IsAdminCtx(ctx) {
		return domain.ErrForbidden
	}

	// Pending mirror writes for a deleted document are pointless, so they
	// are cancelled in the same transaction as the delete.
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.mirror.CancelForDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("cancel mirror tasks: %w", err)
		}
		return s.docs.Delete(ctx, doc.ID)
	})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	info := ctxutil.ClientInfoFromCtx(ctx)
	s.recordActivity(ctx, domain.ActivityEntry{
		UserID:     userID,
		DocumentID: &doc.ID,
		Action:     domain.ActionDelete,
		IPAddress:  info.IPAddress,
		UserAgent:  info.UserAgent,
	})

	s.log.InfoContext(ctx, "document deleted",
		slog.String("document_id", doc.ID.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
