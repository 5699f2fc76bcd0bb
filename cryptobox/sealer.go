// Package cryptobox seals sensitive values with AES-256-GCM using the
// hex encoded "nonce:ciphertext" wire format.
package cryptobox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed is returned by Open for input that does not parse as
	// "noncehex:cipherhex".
	ErrMalformed = errors.New("cryptobox: malformed input")
	// ErrDecrypt is returned when authentication fails, either because
	// the key is wrong or the ciphertext was altered.
	ErrDecrypt = errors.New("cryptobox: decryption failed")
)

// Sealer encrypts and decrypts short values. It is safe for concurrent use.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer creates a Sealer from a 32-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != 32 {
		return nil, errors.New("cryptobox: key must be exactly 32 bytes")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cryptobox: cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cryptobox: gcm: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random nonce.
func (s *Sealer) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("cryptobox: read nonce: %w", err)
	}

	ciphertext := s.aead.Seal(nil, nonce, plaintext, nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(ciphertext), nil
}

// Open decrypts a value produced by Seal.
func (s *Sealer) Open(sealed string) ([]byte, error) {
	nonceHex, cipherHex, ok := strings.Cut(sealed, ":")
	if !ok {
		return nil, ErrMalformed
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil || len(nonce) != s.aead.NonceSize() {
		return nil, ErrMalformed
	}
	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil {
		return nil, ErrMalformed
	}

	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
