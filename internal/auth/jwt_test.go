package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWT_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "docuchain", 15*time.Minute)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	gotID, gotRole, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if gotID != userID {
		t.Errorf("user ID: got %s, want %s", gotID, userID)
	}
	if gotRole != "admin" {
		t.Errorf("role: got %q, want %q", gotRole, "admin")
	}
}

func TestJWT_Expired(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "docuchain", -time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := m.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "docuchain", 15*time.Minute)
	other := NewJWTManager(strings.Repeat("x", 32), "docuchain", 15*time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestJWT_WrongIssuer(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "someone-else", 15*time.Minute)
	v := NewJWTManager(testSecret, "docuchain", 15*time.Minute)

	token, err := m.GenerateAccessToken(uuid.New(), "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := v.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestJWT_EmptyToken(t *testing.T) {
	t.Parallel()

	m := NewJWTManager(testSecret, "docuchain", 15*time.Minute)
	if _, _, err := m.ValidateAccessToken(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
