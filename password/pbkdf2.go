package password

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Config tunes the key derivation. LegacyIterations is the cost assumed
// for two-field hashes produced before the iteration count was encoded.
type Config struct {
	Iterations       int
	LegacyIterations int
	SaltLength       int
	KeyLength        int
}

// Hasher derives and verifies credential hashes. It is stateless and safe
// for concurrent use.
type Hasher struct {
	cfg Config
}

// NewHasher validates the parameters and returns a ready Hasher.
func NewHasher(cfg Config) (*Hasher, error) {
	if cfg.Iterations < 1000 {
		return nil, errors.New("password: Iterations must be >= 1000")
	}
	if cfg.LegacyIterations < 1 {
		return nil, errors.New("password: LegacyIterations must be >= 1")
	}
	if cfg.SaltLength < 16 {
		return nil, errors.New("password: SaltLength must be >= 16")
	}
	if cfg.KeyLength < 32 {
		return nil, errors.New("password: KeyLength must be >= 32")
	}
	return &Hasher{cfg: cfg}, nil
}

// Hash derives a fresh hash for the given password. The result encodes the
// salt and iteration count, so verification never depends on current
// configuration.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: read salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, h.cfg.Iterations, h.cfg.KeyLength, sha512.New)
	return hex.EncodeToString(salt) + ":" + strconv.Itoa(h.cfg.Iterations) + ":" + hex.EncodeToString(key), nil
}

// Verify reports whether password matches the encoded hash. Malformed
// input verifies as false rather than erroring; a corrupt stored hash is
// indistinguishable from a wrong password to the caller.
func (h *Hasher) Verify(password, encoded string) bool {
	salt, iterations, want, ok := h.decode(encoded)
	if !ok {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, len(want), sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// NeedsUpgrade reports whether the encoded hash was derived with weaker
// parameters than the current configuration, or uses the legacy format.
func (h *Hasher) NeedsUpgrade(encoded string) bool {
	_, iterations, _, ok := h.decode(encoded)
	if !ok {
		return false
	}
	if strings.Count(encoded, ":") == 1 {
		return true
	}
	return iterations < h.cfg.Iterations
}

func (h *Hasher) decode(encoded string) (salt []byte, iterations int, key []byte, ok bool) {
	parts := strings.Split(encoded, ":")

	var saltHex, keyHex string
	switch len(parts) {
	case 2:
		saltHex, keyHex = parts[0], parts[1]
		iterations = h.cfg.LegacyIterations
	case 3:
		saltHex, keyHex = parts[0], parts[2]
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			return nil, 0, nil, false
		}
		iterations = n
	default:
		return nil, 0, nil, false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return nil, 0, nil, false
	}
	key, err = hex.DecodeString(keyHex)
	if err != nil || len(key) == 0 {
		return nil, 0, nil, false
	}
	return salt, iterations, key, true
}
