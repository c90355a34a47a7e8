// Package cryptostore stores document content encrypted with a per-document
// symmetric key. Plaintext is sealed with AES-256-GCM before it reaches the
// underlying blob store, so the store only ever sees ciphertext.
package cryptostore

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/docuchain/docuchain-backend/internal/domain"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// BlobStore is the content-addressed backend ciphertext is written to.
type BlobStore interface {
	Add(ctx context.Context, data []byte) (string, error)
	Cat(ctx context.Context, address string) ([]byte, error)
}

// Store encrypts content before handing it to a BlobStore and decrypts it
// on the way back.
type Store struct {
	blobs BlobStore
}

// New creates a Store backed by the given blob store.
func New(blobs BlobStore) *Store {
	return &Store{blobs: blobs}
}

// GenerateKey returns a fresh random AES-256 key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// Put seals plaintext with the key and writes the ciphertext to the blob
// store, returning the content address. The nonce is prepended to the
// ciphertext so Get needs only the address and the key.
func (s *Store) Put(ctx context.Context, plaintext, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: nonce: %v", domain.ErrEncryptionFailure, err)
	}

	sealed := gcm.Seal(nonce, nonce, plaintext, nil)

	address, err := s.blobs.Add(ctx, sealed)
	if err != nil {
		return "", fmt.Errorf("store ciphertext: %w", err)
	}
	return address, nil
}

// Get fetches ciphertext by address and opens it with the key. A wrong key
// or tampered ciphertext yields ErrDecryptionFailure.
func (s *Store) Get(ctx context.Context, address string, key []byte) ([]byte, error) {
	sealed, err := s.blobs.Cat(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("fetch ciphertext: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("%w: ciphertext shorter than nonce", domain.ErrDecryptionFailure)
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDecryptionFailure, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d",
			domain.ErrEncryptionFailure, KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncryptionFailure, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncryptionFailure, err)
	}
	return gcm, nil
}
