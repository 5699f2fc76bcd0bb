package authcore

import (
	"crypto/sha256"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/nutrifit/authcore/audit"
	"github.com/nutrifit/authcore/cryptobox"
	"github.com/nutrifit/authcore/lockout"
	"github.com/nutrifit/authcore/password"
	"github.com/nutrifit/authcore/ratelimit"
	"github.com/nutrifit/authcore/token"
)

// Builder assembles an Engine. A Builder is single use; Build fails on
// the second call.
type Builder struct {
	config    Config
	provider  UserProvider
	auditSink audit.Sink
	redis     redis.UniversalClient
	built     bool
}

// New returns a Builder preloaded with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithUserProvider sets the persistence collaborator. Required.
func (b *Builder) WithUserProvider(provider UserProvider) *Builder {
	b.provider = provider
	return b
}

// WithAuditSink attaches an external destination for audit events.
// Events are mirrored asynchronously; the sink never blocks auth flows.
func (b *Builder) WithAuditSink(sink audit.Sink) *Builder {
	b.auditSink = sink
	return b
}

// WithRedis backs the rate limiters and the lockout store with Redis so
// state is shared across instances. Without it both fall back to process
// memory.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// Build validates the configuration and wires the Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("authcore: builder already used")
	}
	b.built = true

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.provider == nil {
		return nil, errors.New("authcore: a UserProvider is required")
	}

	hasher, err := password.NewHasher(password.Config{
		Iterations:       cfg.Password.Iterations,
		LegacyIterations: cfg.Password.LegacyIterations,
		SaltLength:       cfg.Password.SaltLength,
		KeyLength:        cfg.Password.KeyLength,
	})
	if err != nil {
		return nil, err
	}

	tokens, err := token.NewManager(token.Config{
		Secret:     cfg.Secrets.SigningSecret,
		DefaultTTL: cfg.Token.SessionTTL,
		Issuer:     cfg.Token.Issuer,
		Leeway:     cfg.Token.Leeway,
	})
	if err != nil {
		return nil, err
	}

	var sealer *cryptobox.Sealer
	if len(cfg.Secrets.EncryptionSecret) > 0 {
		key := sha256.Sum256(cfg.Secrets.EncryptionSecret)
		sealer, err = cryptobox.NewSealer(key[:])
		if err != nil {
			return nil, err
		}
	}

	var dispatcher *audit.Dispatcher
	var forward audit.Sink
	if cfg.Audit.Enabled && b.auditSink != nil {
		dispatcher = audit.NewDispatcher(b.auditSink, audit.DispatcherConfig{
			BufferSize: cfg.Audit.BufferSize,
			DropIfFull: cfg.Audit.DropIfFull,
		})
		forward = dispatcher
	}

	auditLog := audit.NewLog(audit.Config{
		Capacity:       cfg.Audit.Capacity,
		ProductionMode: cfg.Security.ProductionMode,
	}, forward)

	var lockStore lockout.Store
	if b.redis != nil {
		lockStore = lockout.NewRedisStore(b.redis, cfg.Lockout.RedisPrefix)
	} else {
		lockStore = lockout.NewMemoryStore()
	}
	lockouts := lockout.NewTracker(lockStore, auditLog, auditLog, lockout.Config{
		MaxAttempts:  cfg.Lockout.MaxAttempts,
		Window:       cfg.Lockout.Window,
		LockDuration: cfg.Lockout.LockDuration,
	})

	newLimiter := func(name string, policy RatePolicy) ratelimit.Limiter {
		rcfg := ratelimit.Config{MaxRequests: policy.MaxRequests, Window: policy.Window}
		if b.redis != nil {
			return ratelimit.NewRedisLimiter(b.redis, cfg.RateLimit.RedisPrefix+":"+name, rcfg)
		}
		return ratelimit.NewMemoryLimiter(rcfg)
	}

	return &Engine{
		config:       cfg,
		provider:     b.provider,
		hasher:       hasher,
		tokens:       tokens,
		sealer:       sealer,
		auditLog:     auditLog,
		dispatcher:   dispatcher,
		lockouts:     lockouts,
		loginLimiter: newLimiter("login", cfg.RateLimit.Login),
		apiLimiter:   newLimiter("api", cfg.RateLimit.API),
		aiLimiter:    newLimiter("ai", cfg.RateLimit.AI),
		metrics:      NewMetrics(cfg.Metrics),
	}, nil
}
