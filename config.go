package authcore

import (
	"bytes"
	"errors"
	"time"
)

// Config carries every tunable the Engine consumes. Instances are
// configured once before [Builder.Build] and treated as immutable
// afterwards; Build clones secret material defensively.
type Config struct {
	Secrets   SecretsConfig
	Password  PasswordConfig
	Token     TokenConfig
	RateLimit RateLimitConfig
	Lockout   LockoutConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
	Security  SecurityConfig
}

/*
====================================
SECRETS CONFIG
====================================
*/

// SecretsConfig holds the key material. The signing secret authenticates
// session tokens; the encryption secret, when set, seals sensitive values
// at rest. The two must never be the same bytes: a key that both signs and
// encrypts turns any padding or comparison oracle on one path into a
// forgery primitive on the other.
type SecretsConfig struct {
	SigningSecret    []byte
	EncryptionSecret []byte
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig tunes the PBKDF2 hasher and the caller-side password
// policy enforced by Register and ChangePassword.
type PasswordConfig struct {
	Iterations       int
	LegacyIterations int
	SaltLength       int
	KeyLength        int
	MinLength        int
	UpgradeOnLogin   bool
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig names the two session-lifetime policies explicitly.
// SessionTTL covers ordinary logins; ExtendedSessionTTL covers the
// remember-me flow. There is no implicit per-call-site default.
type TokenConfig struct {
	SessionTTL         time.Duration
	ExtendedSessionTTL time.Duration
	Issuer             string
	Leeway             time.Duration
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RatePolicy is one sliding-window budget: at most MaxRequests per Window.
type RatePolicy struct {
	MaxRequests int
	Window      time.Duration
}

// RateLimitConfig holds the three independent policy classes the platform
// uses. Login guards the credential endpoints; API and AI are exposed to
// the HTTP layer for general and model-call throttling.
type RateLimitConfig struct {
	Login       RatePolicy
	API         RatePolicy
	AI          RatePolicy
	RedisPrefix string
}

/*
====================================
LOCKOUT CONFIG
====================================
*/

// LockoutConfig controls audit-derived account lockout: MaxAttempts failed
// logins within Window lock the identifier for LockDuration.
type LockoutConfig struct {
	MaxAttempts  int
	Window       time.Duration
	LockDuration time.Duration
	RedisPrefix  string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig sizes the in-process audit store and the async mirroring
// dispatcher. Mirroring only runs when a sink is attached via
// [Builder.WithAuditSink].
type AuditConfig struct {
	Enabled    bool
	Capacity   int
	BufferSize int
	DropIfFull bool
}

// MetricsConfig enables the atomic counter set exposed through
// [Engine.MetricsSnapshot].
type MetricsConfig struct {
	Enabled bool
}

// SecurityConfig holds cross-cutting hardening switches. ProductionMode
// activates detail redaction in audit events and raises the minimum
// hashing cost accepted by Validate.
type SecurityConfig struct {
	ProductionMode bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration. Secrets are
// intentionally absent; Validate rejects the zero value until the caller
// supplies them.
func DefaultConfig() Config {
	return Config{
		Password: PasswordConfig{
			Iterations:       10000,
			LegacyIterations: 1000,
			SaltLength:       16,
			KeyLength:        64,
			MinLength:        8,
			UpgradeOnLogin:   true,
		},
		Token: TokenConfig{
			SessionTTL:         30 * time.Minute,
			ExtendedSessionTTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			Login:       RatePolicy{MaxRequests: 5, Window: time.Minute},
			API:         RatePolicy{MaxRequests: 100, Window: time.Hour},
			AI:          RatePolicy{MaxRequests: 20, Window: time.Hour},
			RedisPrefix: "rl",
		},
		Lockout: LockoutConfig{
			MaxAttempts:  5,
			Window:       15 * time.Minute,
			LockDuration: 30 * time.Minute,
			RedisPrefix:  "lk",
		},
		Audit: AuditConfig{
			Enabled:    true,
			Capacity:   1000,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
		Security: SecurityConfig{
			ProductionMode: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Secrets.SigningSecret = cloneBytes(cfg.Secrets.SigningSecret)
	out.Secrets.EncryptionSecret = cloneBytes(cfg.Secrets.EncryptionSecret)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate fails fast on configurations that would silently weaken the
// system. A missing or short secret is a total security failure, so it is
// a startup error, never a default.
func (c *Config) Validate() error {
	// Secrets
	if len(c.Secrets.SigningSecret) < 32 {
		return errors.New("SigningSecret is required and must be at least 32 bytes")
	}
	if len(c.Secrets.EncryptionSecret) > 0 {
		if len(c.Secrets.EncryptionSecret) < 32 {
			return errors.New("EncryptionSecret must be at least 32 bytes when set")
		}
		if bytes.Equal(c.Secrets.SigningSecret, c.Secrets.EncryptionSecret) {
			return errors.New("SigningSecret and EncryptionSecret must be distinct")
		}
	}

	// Password
	if c.Password.Iterations < 1000 {
		return errors.New("Password Iterations must be >= 1000")
	}
	if c.Password.LegacyIterations < 1 {
		return errors.New("Password LegacyIterations must be >= 1")
	}
	if c.Password.SaltLength < 16 {
		return errors.New("Password SaltLength must be >= 16")
	}
	if c.Password.KeyLength < 32 {
		return errors.New("Password KeyLength must be >= 32")
	}
	if c.Password.MinLength < 8 {
		return errors.New("Password MinLength must be >= 8")
	}

	// Token
	if c.Token.SessionTTL <= 0 {
		return errors.New("Token SessionTTL must be > 0")
	}
	if c.Token.ExtendedSessionTTL < c.Token.SessionTTL {
		return errors.New("Token ExtendedSessionTTL must be >= SessionTTL")
	}
	if c.Token.Leeway < 0 || c.Token.Leeway > 2*time.Minute {
		return errors.New("Token Leeway must be between 0 and 2m")
	}

	// Rate limit
	for _, p := range []struct {
		name   string
		policy RatePolicy
	}{
		{"Login", c.RateLimit.Login},
		{"API", c.RateLimit.API},
		{"AI", c.RateLimit.AI},
	} {
		if p.policy.MaxRequests <= 0 {
			return errors.New("RateLimit " + p.name + " MaxRequests must be > 0")
		}
		if p.policy.Window <= 0 {
			return errors.New("RateLimit " + p.name + " Window must be > 0")
		}
	}

	// Lockout
	if c.Lockout.MaxAttempts <= 0 {
		return errors.New("Lockout MaxAttempts must be > 0")
	}
	if c.Lockout.Window <= 0 {
		return errors.New("Lockout Window must be > 0")
	}
	if c.Lockout.LockDuration <= 0 {
		return errors.New("Lockout LockDuration must be > 0")
	}

	// Audit
	if c.Audit.Capacity <= 0 {
		return errors.New("Audit Capacity must be > 0")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when audit mirroring is enabled")
	}

	if c.Security.ProductionMode {
		if c.Password.Iterations < 10000 {
			return errors.New("ProductionMode requires Password Iterations >= 10000")
		}
		if c.Token.SessionTTL > time.Hour {
			return errors.New("ProductionMode requires Token SessionTTL <= 1h")
		}
	}

	return nil
}
