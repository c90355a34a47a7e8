// Package mirror reconciles failed ledger writes. Document operations
// enqueue a task when their best-effort ledger call fails; this worker
// drains the queue in the background with an exponential retry schedule
// and a bounded attempt budget.
//
// Dropping a task after the budget is exhausted is logged and nothing
// more: the local registry is the source of truth and a permanently
// diverged ledger mirror is an accepted outcome.
package mirror

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/adapter/ledger"
	"github.com/docuchain/docuchain-backend/internal/config"
	"github.com/docuchain/docuchain-backend/internal/domain"
)

type taskQueue interface {
	Claim(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.MirrorTask, error)
	Complete(ctx context.Context, id uuid.UUID) error
	Reschedule(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time) error
}

// claimLease is how long a claimed batch stays invisible to other workers.
// Long enough to replay a full batch against a slow ledger, short enough
// that tasks orphaned by a crashed worker come back within minutes.
const claimLease = 5 * time.Minute

type ledgerClient interface {
	RegisterDocument(ctx context.Context, contentAddress, ownerWallet string) (ledger.Receipt, error)
	GrantAccess(ctx context.Context, contentAddress, granteeWallet string, expiresAt time.Time) (ledger.Receipt, error)
	RevokeAccess(ctx context.Context, contentAddress, granteeWallet string) (ledger.Receipt, error)
}

type documentRepo interface {
	SetLedgerTxHash(ctx context.Context, id uuid.UUID, txHash string) error
}

// Worker drains the ledger mirror queue.
type Worker struct {
	queue  taskQueue
	ledger ledgerClient
	docs   documentRepo
	log    *slog.Logger

	pollInterval time.Duration
	maxAttempts  int
	batchSize    int
}

// NewWorker creates a Worker from config.
func NewWorker(
	log *slog.Logger,
	queue taskQueue,
	ledgerClient ledgerClient,
	docs documentRepo,
	cfg config.MirrorConfig,
) *Worker {
	return &Worker{
		queue:        queue,
		ledger:       ledgerClient,
		docs:         docs,
		log:          log.With("worker", "mirror"),
		pollInterval: cfg.PollInterval,
		maxAttempts:  cfg.MaxAttempts,
		batchSize:    cfg.BatchSize,
	}
}

// Run polls the queue until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.log.InfoContext(ctx, "mirror worker started",
		slog.Duration("poll_interval", w.pollInterval),
		slog.Int("max_attempts", w.maxAttempts),
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("mirror worker stopped")
			return
		case <-ticker.C:
			if err := w.runOnce(ctx); err != nil {
				w.log.ErrorContext(ctx, "mirror pass failed", slog.String("error", err.Error()))
			}
		}
	}
}

// runOnce processes one batch of due tasks.
func (w *Worker) runOnce(ctx context.Context) error {
	now := time.Now().UTC()

	tasks, err := w.queue.Claim(ctx, now, w.batchSize, claimLease)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		w.process(ctx, task)
	}
	return nil
}

func (w *Worker) process(ctx context.Context, task domain.MirrorTask) {
	err := w.execute(ctx, task)
	if err == nil {
		if err := w.queue.Complete(ctx, task.ID); err != nil {
			w.log.ErrorContext(ctx, "complete mirror task failed",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()),
			)
		}
		w.log.InfoContext(ctx, "mirror task replayed",
			slog.String("task_id", task.ID.String()),
			slog.String("op", task.Op.String()),
			slog.Int("attempts", task.Attempts+1),
		)
		return
	}

	attempts := task.Attempts + 1
	if attempts >= w.maxAttempts {
		// budget exhausted, give the mirror up for this task
		if err := w.queue.Complete(ctx, task.ID); err != nil {
			w.log.ErrorContext(ctx, "drop mirror task failed",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()),
			)
			return
		}
		w.log.WarnContext(ctx, "mirror task dropped after retry budget",
			slog.String("task_id", task.ID.String()),
			slog.String("document_id", task.DocumentID.String()),
			slog.String("op", task.Op.String()),
			slog.Int("attempts", attempts),
		)
		return
	}

	next := time.Now().UTC().Add(retryDelay(attempts))
	if err := w.queue.Reschedule(ctx, task.ID, attempts, next); err != nil {
		w.log.ErrorContext(ctx, "reschedule mirror task failed",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (w *Worker) execute(ctx context.Context, task domain.MirrorTask) error {
	switch task.Op {
	case domain.MirrorOpRegister:
		receipt, err := w.ledger.RegisterDocument(ctx, task.ContentAddress, task.WalletAddress)
		if err != nil {
			return err
		}
		if err := w.docs.SetLedgerTxHash(ctx, task.DocumentID, receipt.TxHash); err != nil {
			// document may be gone by now, the ledger write itself succeeded
			w.log.WarnContext(ctx, "store replayed tx hash failed",
				slog.String("document_id", task.DocumentID.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil
	case domain.MirrorOpGrant:
		expiresAt := time.Now().UTC().AddDate(0, 0, domain.DefaultShareDays)
		if task.ExpiresAt != nil {
			expiresAt = *task.ExpiresAt
		}
		_, err := w.ledger.GrantAccess(ctx, task.ContentAddress, task.WalletAddress, expiresAt)
		return err
	case domain.MirrorOpRevoke:
		_, err := w.ledger.RevokeAccess(ctx, task.ContentAddress, task.WalletAddress)
		return err
	default:
		w.log.Error("unknown mirror op", slog.String("op", task.Op.String()))
		return nil
	}
}

// retryDelay returns the wait before attempt n+1 using the exponential
// schedule, without the per-call jitter state backoff keeps internally.
func retryDelay(attempts int) time.Duration {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 30 * time.Second
	bo.MaxInterval = 30 * time.Minute
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	delay := bo.NextBackOff()
	for i := 1; i < attempts; i++ {
		delay = bo.NextBackOff()
	}
	return delay
}
