// Package mirror implements the ledger mirror queue repository using
// PostgreSQL. The queue holds ledger writes that failed inline and are
// retried in the background.
package mirror

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/docuchain/docuchain-backend/internal/adapter/postgres"
	"github.com/docuchain/docuchain-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var taskColumns = []string{
	"id", "document_id", "content_address", "op", "wallet_address",
	"expires_at", "attempts", "next_attempt_at", "created_at",
}

// Repo provides mirror queue persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new mirror queue repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type taskRow struct {
	ID             uuid.UUID  `db:"id"`
	DocumentID     uuid.UUID  `db:"document_id"`
	ContentAddress string     `db:"content_address"`
	Op             string     `db:"op"`
	WalletAddress  string     `db:"wallet_address"`
	ExpiresAt      *time.Time `db:"expires_at"`
	Attempts       int        `db:"attempts"`
	NextAttemptAt  time.Time  `db:"next_attempt_at"`
	CreatedAt      time.Time  `db:"created_at"`
}

// Enqueue inserts a new mirror task.
func (r *Repo) Enqueue(ctx context.Context, task domain.MirrorTask) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("ledger_mirror_queue").
		Columns(taskColumns...).
		Values(task.ID, task.DocumentID, task.ContentAddress, task.Op.String(),
			task.WalletAddress, task.ExpiresAt, task.Attempts, task.NextAttemptAt,
			task.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert mirror task: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "mirror_task", task.ID)
	}
	return nil
}

// Claim leases up to limit tasks whose next attempt time has passed, oldest
// first. Claiming pushes each task's next attempt past the lease window in
// the same statement, so a second worker polling concurrently sees nothing
// to pick up. A task whose worker dies mid-flight becomes due again once the
// lease expires. FOR UPDATE SKIP LOCKED keeps two simultaneous claims from
// selecting the same rows.
func (r *Repo) Claim(ctx context.Context, now time.Time, limit int, lease time.Duration) ([]domain.MirrorTask, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	due, dueArgs, err := squirrel.Select("id").
		From("ledger_mirror_queue").
		Where(squirrel.LtOrEq{"next_attempt_at": now}).
		OrderBy("next_attempt_at ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select due tasks: %w", err)
	}

	sql, args, err := psql.Update("ledger_mirror_queue").
		Set("next_attempt_at", now.Add(lease)).
		Where(squirrel.Expr("id IN ("+due+")", dueArgs...)).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build claim tasks: %w", err)
	}

	var rows []taskRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "mirror_task", uuid.Nil)
	}

	tasks := make([]domain.MirrorTask, len(rows))
	for i, row := range rows {
		tasks[i] = toDomain(row)
	}
	return tasks, nil
}

// Complete removes a finished (or abandoned) task.
func (r *Repo) Complete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("ledger_mirror_queue").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete mirror task: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "mirror_task", id)
	}
	return nil
}

// Reschedule bumps the attempt counter and sets the next attempt time.
func (r *Repo) Reschedule(ctx context.Context, id uuid.UUID, attempts int, nextAttemptAt time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("ledger_mirror_queue").
		Set("attempts", attempts).
		Set("next_attempt_at", nextAttemptAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update mirror task: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "mirror_task", id)
	}
	return nil
}

// CancelForDocument drops queued tasks for a document. Called on document
// deletion so the worker does not mirror grants for documents that no longer
// exist locally.
func (r *Repo) CancelForDocument(ctx context.Context, documentID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("ledger_mirror_queue").
		Where(squirrel.Eq{"document_id": documentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cancel mirror tasks: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "mirror_task", documentID)
	}
	return nil
}

func toDomain(row taskRow) domain.MirrorTask {
	return domain.MirrorTask{
		ID:             row.ID,
		DocumentID:     row.DocumentID,
		ContentAddress: row.ContentAddress,
		Op:             domain.MirrorOp(row.Op),
		WalletAddress:  row.WalletAddress,
		ExpiresAt:      row.ExpiresAt,
		Attempts:       row.Attempts,
		NextAttemptAt:  row.NextAttemptAt,
		CreatedAt:      row.CreatedAt,
	}
}
