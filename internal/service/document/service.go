// Package document orchestrates the vault's document lifecycle: encrypted
// upload and download, time-bounded sharing, revocation, deletion and the
// audit trail.
//
// Local storage is the source of truth for access decisions. The ledger is
// a best-effort mirror: it is written after the local change commits, its
// failures are logged and queued for retry, and they never fail the primary
// operation.
package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/adapter/ledger"
	"github.com/docuchain/docuchain-backend/internal/config"
	"github.com/docuchain/docuchain-backend/internal/domain"
)

const (
	// PublicPageSize is the default bound for the publicOthers listing,
	// used when the configured page size is absent.
	PublicPageSize = 10

	// DefaultLogLimit and MaxLogLimit bound activity log pages. MaxLogLimit
	// is the fallback cap when no activity_page_max is configured.
	DefaultLogLimit = 50
	MaxLogLimit     = 200

	// mirrorRetryDelay is how soon the reconciliation worker first picks up
	// a failed ledger write.
	mirrorRetryDelay = 30 * time.Second
)

type documentRepo interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	SetLedgerTxHash(ctx context.Context, id uuid.UUID, txHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpsertGrant(ctx context.Context, grant domain.AccessGrant) (domain.AccessGrant, error)
	DeleteGrant(ctx context.Context, documentID, userID uuid.UUID) error
	ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Document, error)
	ListSharedActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Document, error)
	ListPublicOthers(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Document, error)
}

type activityRepo interface {
	Append(ctx context.Context, entry domain.ActivityEntry) error
	ListByDocument(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.ActivityEntry, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ActivityEntry, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type contentStore interface {
	Put(ctx context.Context, plaintext, key []byte) (string, error)
	Get(ctx context.Context, address string, key []byte) ([]byte, error)
}

type ledgerClient interface {
	RegisterDocument(ctx context.Context, contentAddress, ownerWallet string) (ledger.Receipt, error)
	GrantAccess(ctx context.Context, contentAddress, granteeWallet string, expiresAt time.Time) (ledger.Receipt, error)
	RevokeAccess(ctx context.Context, contentAddress, granteeWallet string) (ledger.Receipt, error)
}

type mirrorQueue interface {
	Enqueue(ctx context.Context, task domain.MirrorTask) error
	CancelForDocument(ctx context.Context, documentID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides document vault operations.
type Service struct {
	docs     documentRepo
	activity activityRepo
	users    userRepo
	store    contentStore
	ledger   ledgerClient
	mirror   mirrorQueue
	txm      txManager
	log      *slog.Logger

	publicPageSize int
	maxLogEntries  int
}

// NewService creates a new document Service.
func NewService(
	log *slog.Logger,
	docs documentRepo,
	activity activityRepo,
	users userRepo,
	store contentStore,
	ledgerClient ledgerClient,
	mirror mirrorQueue,
	txm txManager,
	cfg config.VaultConfig,
) *Service {
	pageSize := cfg.PublicPageSize
	if pageSize <= 0 {
		pageSize = PublicPageSize
	}
	logMax := cfg.ActivityPageMax
	if logMax <= 0 {
		logMax = MaxLogLimit
	}
	return &Service{
		docs:           docs,
		activity:       activity,
		users:          users,
		store:          store,
		ledger:         ledgerClient,
		mirror:         mirror,
		txm:            txm,
		log:            log.With("service", "document"),
		publicPageSize: pageSize,
		maxLogEntries:  logMax,
	}
}

// recordActivity appends an audit entry. Audit failures are logged, never
// propagated: the primary operation has already succeeded.
func (s *Service) recordActivity(ctx context.Context, entry domain.ActivityEntry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.log.ErrorContext(ctx, "activity append failed",
			slog.String("action", entry.Action.String()),
			slog.String("error", err.Error()),
		)
	}
}

// enqueueMirror schedules a failed ledger write for reconciliation.
func (s *Service) enqueueMirror(ctx context.Context, task domain.MirrorTask) {
	now := time.Now().UTC()
	task.ID = uuid.New()
	task.Attempts = 0
	task.NextAttemptAt = now.Add(mirrorRetryDelay)
	task.CreatedAt = now

	if err := s.mirror.Enqueue(ctx, task); err != nil {
		s.log.ErrorContext(ctx, "mirror enqueue failed",
			slog.String("document_id", task.DocumentID.String()),
			slog.String("op", task.Op.String()),
			slog.String("error", err.Error()),
		)
	}
}
