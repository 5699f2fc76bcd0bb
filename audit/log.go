package audit

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultCapacity   = 1000
	defaultQueryLimit = 100
	maxUserAgentLen   = 200
	redactedValue     = "[REDACTED]"
)

// Config tunes the in-process log.
type Config struct {
	// Capacity bounds the number of retained events; the oldest are
	// evicted first. Zero means the default of 1000.
	Capacity int
	// ProductionMode redacts sensitive detail values before events are
	// stored or forwarded.
	ProductionMode bool
}

// Options carry the optional fields of an event being recorded.
type Options struct {
	UserID    string
	IP        string
	UserAgent string
	Details   map[string]string
	// Severity overrides the type's default when set.
	Severity Severity
}

// Filter selects events for Query. Zero fields match everything.
type Filter struct {
	UserID string
	Type   Type
	Since  time.Time
	// Limit caps the result; zero means the default of 100.
	Limit int
}

// Log is a bounded in-memory store of audit events. Records are kept
// newest-last internally and returned newest-first by Query. An optional
// forward sink receives every stored event synchronously; use a
// Dispatcher to make forwarding asynchronous.
type Log struct {
	mu       sync.Mutex
	events   []Event
	capacity int
	prod     bool
	forward  Sink

	now func() time.Time
}

// NewLog creates a log retaining up to cfg.Capacity events. forward may
// be nil.
func NewLog(cfg Config, forward Sink) *Log {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Log{
		events:   make([]Event, 0, capacity),
		capacity: capacity,
		prod:     cfg.ProductionMode,
		forward:  forward,
		now:      time.Now,
	}
}

// Record stores one event and returns the stored copy. Sensitive details
// are redacted in production mode and oversized user agents truncated
// before the event is retained.
func (l *Log) Record(eventType Type, opts Options) Event {
	severity := opts.Severity
	if severity == "" {
		severity = defaultSeverity[eventType]
		if severity == "" {
			severity = SeverityInfo
		}
	}

	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    opts.UserID,
		IP:        opts.IP,
		UserAgent: truncate(opts.UserAgent, maxUserAgentLen),
		Details:   l.sanitizeDetails(opts.Details),
		Timestamp: l.now().UTC(),
		Severity:  severity,
	}

	l.mu.Lock()
	if len(l.events) >= l.capacity {
		l.events = append(l.events[:0], l.events[1:]...)
	}
	l.events = append(l.events, event)
	forward := l.forward
	l.mu.Unlock()

	if forward != nil {
		forward.Write(event)
	}
	return event
}

// Query returns matching events newest first, capped at f.Limit.
func (l *Log) Query(f Filter) []Event {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Event, 0, limit)
	for i := len(l.events) - 1; i >= 0 && len(out) < limit; i-- {
		e := l.events[i]
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if !f.Since.IsZero() && e.Timestamp.Before(f.Since) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountFailedLogins counts login_failure events within the window whose
// user ID or IP matches identifier. The dual match lets an email-keyed
// lockout see failures recorded against the client address and vice versa.
func (l *Log) CountFailedLogins(identifier string, window time.Duration) int {
	cutoff := l.now().Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for i := len(l.events) - 1; i >= 0; i-- {
		e := l.events[i]
		if e.Timestamp.Before(cutoff) {
			break
		}
		if e.Type != TypeLoginFailure {
			continue
		}
		if e.UserID == identifier || e.IP == identifier {
			count++
		}
	}
	return count
}

// Len reports the number of retained events.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

func (l *Log) sanitizeDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}

	out := make(map[string]string, len(details))
	for k, v := range details {
		if l.prod && isSensitiveKey(k) {
			out[k] = redactedValue
			continue
		}
		out[k] = v
	}
	return out
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
