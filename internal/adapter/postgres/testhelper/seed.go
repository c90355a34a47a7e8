package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docuchain/docuchain-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with default role. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUser(t, pool, domain.UserRoleUser, "0x"+uniqueSuffix())
}

// SeedAdmin creates a user with the admin role.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUser(t, pool, domain.UserRoleAdmin, "0x"+uniqueSuffix())
}

// SeedUserWithoutWallet creates a user with no ledger identity.
func SeedUserWithoutWallet(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUser(t, pool, domain.UserRoleUser, "")
}

func seedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole, wallet string) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:            uuid.New(),
		Email:         "testuser-" + suffix + "@example.com",
		Username:      "testuser-" + suffix,
		PasswordHash:  "$2a$10$invalidhashfortestsonly..............",
		WalletAddress: wallet,
		Role:          role,
		CreatedAt:     now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, wallet_address, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Email, user.Username, user.PasswordHash, user.WalletAddress,
		user.Role.String(), user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedDocument creates a document owned by ownerID. Returns the filled
// domain.Document (no grants).
func SeedDocument(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, isPublic bool) domain.Document {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := domain.Document{
		ID:             uuid.New(),
		Title:          "doc-" + suffix,
		Description:    "seeded document " + suffix,
		ContentAddress: "Qm" + suffix,
		EncryptionKey:  []byte("0123456789abcdef0123456789abcdef"),
		OwnerID:        ownerID,
		LedgerTxHash:   "0xseed" + suffix,
		IsPublic:       isPublic,
		FileType:       "application/octet-stream",
		FileSize:       1024,
		CreatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO documents (id, title, description, content_address, encryption_key,
		                        owner_id, ledger_tx_hash, is_public, file_type, file_size, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		doc.ID, doc.Title, doc.Description, doc.ContentAddress, doc.EncryptionKey,
		doc.OwnerID, doc.LedgerTxHash, doc.IsPublic, doc.FileType, doc.FileSize, doc.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert: %v", err)
	}

	return doc
}
