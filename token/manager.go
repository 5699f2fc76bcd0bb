package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned for structurally valid tokens past expiry.
	ErrExpired = errors.New("token: expired")
	// ErrInvalid is returned for every other verification failure.
	ErrInvalid = errors.New("token: invalid")
)

// Config tunes the token manager. Secret must be at least 32 bytes;
// DefaultTTL applies when Issue is called with a non-positive lifetime.
type Config struct {
	Secret     []byte
	DefaultTTL time.Duration
	Issuer     string
	Leeway     time.Duration
}

// SessionClaims is the payload carried by a session token.
type SessionClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens. It is safe for concurrent use.
type Manager struct {
	cfg Config
	now func() time.Time
}

// NewManager validates the configuration and returns a ready Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < 32 {
		return nil, errors.New("token: Secret must be at least 32 bytes")
	}
	if cfg.DefaultTTL <= 0 {
		return nil, errors.New("token: DefaultTTL must be > 0")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("token: Leeway must be between 0 and 2m")
	}
	return &Manager{cfg: cfg, now: time.Now}, nil
}

// Issue signs a token for userID. A non-positive ttl falls back to the
// configured DefaultTTL. The returned time is the exact expiry embedded
// in the token.
func (m *Manager) Issue(userID string, ttl time.Duration) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, ErrInvalid
	}
	if ttl <= 0 {
		ttl = m.cfg.DefaultTTL
	}

	now := m.now().UTC()
	expiresAt := now.Add(ttl)
	claims := SessionClaims{
		UID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token: sign: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies tokenStr and returns its claims. Expiry is reported as
// ErrExpired so callers can distinguish a stale session from a forged or
// malformed one; all other failures collapse to ErrInvalid.
func (m *Manager) Parse(tokenStr string) (*SessionClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.cfg.Leeway),
		jwt.WithTimeFunc(m.now),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(*jwt.Token) (any, error) {
		return m.cfg.Secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || claims.UID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
