// Package document implements the document access registry using PostgreSQL.
// It is the single source of truth for ownership and time-bounded grants.
package document

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

// psql builds queries with PostgreSQL $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var documentColumns = []string{
	"id", "title", "description", "content_address", "encryption_key",
	"owner_id", "ledger_tx_hash", "is_public", "file_type", "file_size",
	"created_at",
}

// Repo provides document and access-grant persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// documentRow mirrors the documents table.
type documentRow struct {
	ID             uuid.UUID `db:"id"`
	Title          string    `db:"title"`
	Description    string    `db:"description"`
	ContentAddress string    `db:"content_address"`
	EncryptionKey  []byte    `db:"encryption_key"`
	OwnerID        uuid.UUID `db:"owner_id"`
	LedgerTxHash   string    `db:"ledger_tx_hash"`
	IsPublic       bool      `db:"is_public"`
	FileType       string    `db:"file_type"`
	FileSize       int64     `db:"file_size"`
	CreatedAt      time.Time `db:"created_at"`
}

// grantRow mirrors the access_grants table.
type grantRow struct {
	DocumentID uuid.UUID `db:"document_id"`
	UserID     uuid.UUID `db:"user_id"`
	GrantedAt  time.Time `db:"granted_at"`
	ExpiresAt  time.Time `db:"expires_at"`
}

// ---------------------------------------------------------------------------
// Document operations
// ---------------------------------------------------------------------------

// Create inserts a new document record and returns the persisted document.
func (r *Repo) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("documents").
		Columns(documentColumns...).
		Values(doc.ID, doc.Title, doc.Description, doc.ContentAddress, doc.EncryptionKey,
			doc.OwnerID, doc.LedgerTxHash, doc.IsPublic, doc.FileType, doc.FileSize,
			doc.CreatedAt).
		Suffix("RETURNING " + joinColumns(documentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert document: %w", err)
	}

	var row documentRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "document", doc.ID)
	}

	d := toDomain(row, nil)
	return &d, nil
}

// GetByID returns a document with its full access list, expired grants
// included. Expiry filtering is the caller's concern.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select document: %w", err)
	}

	var row documentRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "document", id)
	}

	grants, err := r.grantsFor(ctx, id)
	if err != nil {
		return nil, err
	}

	d := toDomain(row, grants)
	return &d, nil
}

// SetLedgerTxHash records the registration receipt for a document.
// Used when ledger registration succeeds after the document was created
// (reconciliation path).
func (r *Repo) SetLedgerTxHash(ctx context.Context, id uuid.UUID, txHash string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Update("documents").
		Set("ledger_tx_hash", txHash).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update ledger_tx_hash: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a document. Grants cascade at the storage layer; activity
// log entries are untouched. Returns domain.ErrNotFound for unknown ids so
// repeated deletes surface consistently to callers.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("documents").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete document: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Grant operations
// ---------------------------------------------------------------------------

// UpsertGrant inserts or replaces the grant for (document, user) atomically.
// The ON CONFLICT update keeps the at-most-one-grant-per-principal invariant
// under concurrent shares without a per-document lock.
func (r *Repo) UpsertGrant(ctx context.Context, grant domain.AccessGrant) (domain.AccessGrant, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Insert("access_grants").
		Columns("document_id", "user_id", "granted_at", "expires_at").
		Values(grant.DocumentID, grant.UserID, grant.GrantedAt, grant.ExpiresAt).
		Suffix(`ON CONFLICT (document_id, user_id)
			DO UPDATE SET granted_at = EXCLUDED.granted_at, expires_at = EXCLUDED.expires_at
			RETURNING document_id, user_id, granted_at, expires_at`).
		ToSql()
	if err != nil {
		return domain.AccessGrant{}, fmt.Errorf("build upsert grant: %w", err)
	}

	var row grantRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.AccessGrant{}, postgres.MapError(err, "grant", grant.DocumentID)
	}

	return domain.AccessGrant(row), nil
}

// DeleteGrant removes the grant for (document, user). Removing a grant that
// does not exist is a no-op, not an error.
func (r *Repo) DeleteGrant(ctx context.Context, documentID, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("access_grants").
		Where(squirrel.Eq{"document_id": documentID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete grant: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "grant", documentID)
	}
	return nil
}

// DeleteExpiredGrants removes grants that expired before the cutoff. Storage
// hygiene only; access decisions never observe the difference, since expiry
// is checked at read time.
func (r *Repo) DeleteExpiredGrants(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Delete("access_grants").
		Where(squirrel.Lt{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expired grants: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "grant", uuid.Nil)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

// ListOwned returns documents owned by the user, newest first.
func (r *Repo) ListOwned(ctx context.Context, userID uuid.UUID) ([]domain.Document, error) {
	query := psql.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"owner_id": userID}).
		OrderBy("created_at DESC")

	return r.list(ctx, query)
}

// ListSharedActive returns documents with a non-expired grant for the user,
// most recently granted first.
func (r *Repo) ListSharedActive(ctx context.Context, userID uuid.UUID, now time.Time) ([]domain.Document, error) {
	query := psql.Select(qualify("d", documentColumns)...).
		From("documents d").
		Join("access_grants g ON g.document_id = d.id").
		Where(squirrel.Eq{"g.user_id": userID}).
		Where(squirrel.Gt{"g.expires_at": now}).
		OrderBy("g.granted_at DESC")

	return r.list(ctx, query)
}

// ListPublicOthers returns public documents owned by someone else, newest
// first, capped at limit to avoid unbounded scans. Documents the user
// already holds an active grant for are excluded; those belong in the
// shared listing, and the three listings stay disjoint.
func (r *Repo) ListPublicOthers(ctx context.Context, userID uuid.UUID, now time.Time, limit int) ([]domain.Document, error) {
	query := psql.Select(documentColumns...).
		From("documents").
		Where(squirrel.Eq{"is_public": true}).
		Where(squirrel.NotEq{"owner_id": userID}).
		Where(squirrel.Expr(`NOT EXISTS (
			SELECT 1 FROM access_grants g
			WHERE g.document_id = documents.id AND g.user_id = ? AND g.expires_at > ?
		)`, userID, now)).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	return r.list(ctx, query)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (r *Repo) list(ctx context.Context, query squirrel.SelectBuilder) ([]domain.Document, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list documents: %w", err)
	}

	var rows []documentRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "document", uuid.Nil)
	}

	docs := make([]domain.Document, len(rows))
	for i, row := range rows {
		docs[i] = toDomain(row, nil)
	}
	return docs, nil
}

func (r *Repo) grantsFor(ctx context.Context, documentID uuid.UUID) ([]domain.AccessGrant, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sql, args, err := psql.Select("document_id", "user_id", "granted_at", "expires_at").
		From("access_grants").
		Where(squirrel.Eq{"document_id": documentID}).
		OrderBy("granted_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select grants: %w", err)
	}

	var rows []grantRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "grant", documentID)
	}

	grants := make([]domain.AccessGrant, len(rows))
	for i, row := range rows {
		grants[i] = domain.AccessGrant(row)
	}
	return grants, nil
}

func toDomain(row documentRow, grants []domain.AccessGrant) domain.Document {
	return domain.Document{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		ContentAddress: row.ContentAddress,
		EncryptionKey:  row.EncryptionKey,
		OwnerID:        row.OwnerID,
		LedgerTxHash:   row.LedgerTxHash,
		IsPublic:       row.IsPublic,
		FileType:       row.FileType,
		FileSize:       row.FileSize,
		AccessList:     grants,
		CreatedAt:      row.CreatedAt,
	}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func qualify(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
