package authcore

import (
	"github.com/nutrifit/authcore/audit"
	"github.com/nutrifit/authcore/cryptobox"
	"github.com/nutrifit/authcore/lockout"
	"github.com/nutrifit/authcore/password"
	"github.com/nutrifit/authcore/ratelimit"
	"github.com/nutrifit/authcore/token"
)

// Engine is the authentication core. Construct it with a [Builder]; the
// zero value is not usable. All methods are safe for concurrent use.
type Engine struct {
	config     Config
	provider   UserProvider
	hasher     *password.Hasher
	tokens     *token.Manager
	sealer     *cryptobox.Sealer
	auditLog   *audit.Log
	dispatcher *audit.Dispatcher
	lockouts   *lockout.Tracker

	loginLimiter ratelimit.Limiter
	apiLimiter   ratelimit.Limiter
	aiLimiter    ratelimit.Limiter

	metrics *Metrics
}

func (e *Engine) ready() error {
	if e == nil || e.provider == nil {
		return ErrEngineNotReady
	}
	return nil
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}

// AuditLog exposes the engine's audit store for querying and for
// recording application-level events (data access, admin actions).
func (e *Engine) AuditLog() *audit.Log {
	return e.auditLog
}

// APILimiter is the general request limiter for HTTP middleware.
func (e *Engine) APILimiter() ratelimit.Limiter {
	return e.apiLimiter
}

// AILimiter is the model-call limiter for AI-backed endpoints.
func (e *Engine) AILimiter() ratelimit.Limiter {
	return e.aiLimiter
}

// Sealer returns the at-rest encryption helper, or nil when no
// encryption secret is configured.
func (e *Engine) Sealer() *cryptobox.Sealer {
	return e.sealer
}

// MetricsSnapshot copies the engine counters at one instant.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

// AuditDropped reports audit events discarded because the mirroring
// queue was full. Zero when no sink is attached.
func (e *Engine) AuditDropped() uint64 {
	if e.dispatcher == nil {
		return 0
	}
	return e.dispatcher.Dropped()
}

// Close flushes the audit mirroring pipeline. The Engine must not be
// used afterwards.
func (e *Engine) Close() {
	if e.dispatcher != nil {
		e.dispatcher.Close()
	}
}
