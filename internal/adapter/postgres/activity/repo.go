// Package activity implements the activity log repository using PostgreSQL.
// The log is append-only: rows are never updated or deleted, and they
// survive deletion of the documents they reference.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/docuchain/docuchain-backend/internal/adapter/postgres"
	"github.com/docuchain/docuchain-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides activity log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new activity repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type entryRow struct {
	ID         uuid.UUID  `db:"id"`
	UserID     uuid.UUID  `db:"user_id"`
	DocumentID *uuid.UUID `db:"document_id"`
	Action     string     `db:"action"`
	IPAddress  string     `db:"ip_address"`
	UserAgent  string     `db:"user_agent"`
	Details    []byte     `db:"details"`
	CreatedAt  time.Time  `db:"created_at"`
}

// Append inserts a new activity entry.
func (r *Repo) Append(ctx context.Context, entry domain.ActivityEntry) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var details []byte
	if !entry.Details.IsZero() {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("activity %s: marshal details: %w", entry.ID, err)
		}
		details = b
	}

	sql, args, err := psql.Insert("activity_log").
		Columns("id", "user_id", "document_id", "action", "ip_address", "user_agent", "details", "created_at").
		Values(entry.ID, entry.UserID, entry.DocumentID, entry.Action.String(),
			entry.IPAddress, entry.UserAgent, details, entry.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert activity: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "activity", entry.ID)
	}
	return nil
}

// ListByDocument returns entries for a document, newest first, limited to
// limit records.
func (r *Repo) ListByDocument(ctx context.Context, documentID uuid.UUID, limit int) ([]domain.ActivityEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(entryColumns()...).
		From("activity_log").
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select activity: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "activity", documentID)
	}

	return toDomainEntries(rows)
}

// ListByUser returns entries recorded for a user, newest first, with
// pagination.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ActivityEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(entryColumns()...).
		From("activity_log").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select activity: %w", err)
	}

	var rows []entryRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "activity", userID)
	}

	return toDomainEntries(rows)
}

func entryColumns() []string {
	return []string{"id", "user_id", "document_id", "action", "ip_address", "user_agent", "details", "created_at"}
}

func toDomainEntries(rows []entryRow) ([]domain.ActivityEntry, error) {
	entries := make([]domain.ActivityEntry, len(rows))
	for i, row := range rows {
		entry := domain.ActivityEntry{
			ID:         row.ID,
			UserID:     row.UserID,
			DocumentID: row.DocumentID,
			Action:     domain.Action(row.Action),
			IPAddress:  row.IPAddress,
			UserAgent:  row.UserAgent,
			CreatedAt:  row.CreatedAt,
		}
		if len(row.Details) > 0 {
			if err := json.Unmarshal(row.Details, &entry.Details); err != nil {
				return nil, fmt.Errorf("activity %s: unmarshal details: %w", row.ID, err)
			}
		}
		entries[i] = entry
	}
	return entries, nil
}
