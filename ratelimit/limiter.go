package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBackendUnavailable wraps backend transport failures so callers can
// fail closed without inspecting driver errors.
var ErrBackendUnavailable = errors.New("ratelimit: backend unavailable")

// Config is one sliding-window policy.
type Config struct {
	MaxRequests int
	Window      time.Duration
}

// Limiter decides whether an identifier may proceed. Limited counts the
// attempt when it is allowed; denied attempts are not recorded.
type Limiter interface {
	// Limited reports whether the identifier has exhausted its window.
	Limited(ctx context.Context, identifier string) (bool, error)
	// Reset clears all recorded attempts for the identifier.
	Reset(ctx context.Context, identifier string) error
}

// MemoryLimiter is a process-local sliding-window limiter. Entries are
// pruned lazily on access, so idle identifiers cost nothing after their
// window passes.
type MemoryLimiter struct {
	cfg Config

	mu       sync.Mutex
	attempts map[string][]time.Time

	now func() time.Time
}

// NewMemoryLimiter creates a limiter holding state in process memory.
func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:      cfg,
		attempts: make(map[string][]time.Time),
		now:      time.Now,
	}
}

// Limited checks and records one attempt. The check and the append happen
// under one lock so concurrent callers cannot both slip under the cap.
func (l *MemoryLimiter) Limited(_ context.Context, identifier string) (bool, error) {
	now := l.now()
	cutoff := now.Add(-l.cfg.Window)

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.attempts[identifier][:0]
	for _, at := range l.attempts[identifier] {
		if at.After(cutoff) {
			recent = append(recent, at)
		}
	}

	if len(recent) >= l.cfg.MaxRequests {
		l.attempts[identifier] = recent
		return true, nil
	}

	l.attempts[identifier] = append(recent, now)
	return false, nil
}

// Reset clears the identifier's window.
func (l *MemoryLimiter) Reset(_ context.Context, identifier string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, identifier)
	return nil
}
