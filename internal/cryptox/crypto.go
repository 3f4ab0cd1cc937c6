// Package cryptox wraps the primitives bynderpress needs: argon2id key
// derivation for admin passwords and for the settings sealing key, and an
// AES-GCM sealer used to keep the Bynder permanent token encrypted at rest.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/argon2"
)

// ErrSealedTooShort is returned by Open when the input cannot even hold a nonce.
var ErrSealedTooShort = errors.New("sealed value too short")

// settingsKeySalt is a fixed domain-separation salt for the settings key;
// the secret itself comes from server configuration.
var settingsKeySalt = []byte("bynderpress/settings-sealer/v1")

// DeriveKey stretches secret into a 32-byte key with argon2id.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// DeriveSettingsKey derives the AES-256 key used to seal settings secrets.
func DeriveSettingsKey(secret string) []byte {
	return DeriveKey([]byte(secret), settingsKeySalt)
}

// MakeVerifier hashes a derived key into the value stored for a user.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// PasswordVerifier derives the stored verifier for password and salt.
func PasswordVerifier(password, salt []byte) []byte {
	return MakeVerifier(DeriveKey(password, salt))
}

// CheckPassword compares password against a stored verifier in constant time.
func CheckPassword(password, salt, verifier []byte) bool {
	return subtle.ConstantTimeCompare(PasswordVerifier(password, salt), verifier) == 1
}

// Sealer encrypts small values with AES-GCM. The nonce is prepended to the
// ciphertext so a sealed value is self-contained.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer for a 16, 24 or 32 byte key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext. An empty plaintext seals to nil so "not set"
// round-trips as an empty column.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) == 0 {
		return nil, nil
	}

	n := s.aead.NonceSize()
	if len(sealed) < n {
		return nil, ErrSealedTooShort
	}

	return s.aead.Open(nil, sealed[:n], sealed[n:], nil)
}
