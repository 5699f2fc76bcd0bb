package lockout

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/nutrifit/authcore/audit"
)

const defaultReason = "multiple failed login attempts"

// Config tunes the lockout policy: MaxAttempts failures within Window
// lock the identifier for LockDuration.
type Config struct {
	MaxAttempts  int
	Window       time.Duration
	LockDuration time.Duration
}

// FailureCounter reports recent login failures for an identifier.
// *audit.Log satisfies it.
type FailureCounter interface {
	CountFailedLogins(identifier string, window time.Duration) int
}

// Recorder receives the audit events the tracker emits. *audit.Log
// satisfies it.
type Recorder interface {
	Record(eventType audit.Type, opts audit.Options) audit.Event
}

// Status describes the lock state of an identifier.
type Status struct {
	Locked      bool
	Reason      string
	LockedUntil time.Time
}

// Tracker applies the lockout policy over a Store, counting failures
// through the audit log rather than keeping its own counters.
type Tracker struct {
	store    Store
	failures FailureCounter
	recorder Recorder
	cfg      Config

	now func() time.Time
}

// NewTracker wires the policy. recorder may be nil to skip audit events.
func NewTracker(store Store, failures FailureCounter, recorder Recorder, cfg Config) *Tracker {
	return &Tracker{
		store:    store,
		failures: failures,
		recorder: recorder,
		cfg:      cfg,
		now:      time.Now,
	}
}

// IsLocked reports the identifier's lock status. Expired records are
// deleted on sight and reported as unlocked.
func (t *Tracker) IsLocked(ctx context.Context, identifier string) (Status, error) {
	rec, err := t.store.Get(ctx, identifier)
	if err != nil {
		return Status{}, err
	}
	if rec == nil {
		return Status{}, nil
	}
	if !t.now().Before(rec.LockedUntil) {
		if err := t.store.Delete(ctx, identifier); err != nil {
			return Status{}, err
		}
		return Status{}, nil
	}
	return Status{Locked: true, Reason: rec.Reason, LockedUntil: rec.LockedUntil}, nil
}

// Lock places or refreshes a lock on the identifier and records an
// account_locked audit event. An empty reason uses the default.
func (t *Tracker) Lock(ctx context.Context, identifier, reason string) error {
	if reason == "" {
		reason = defaultReason
	}

	until := t.now().Add(t.cfg.LockDuration)
	if err := t.store.Put(ctx, identifier, Record{LockedUntil: until, Reason: reason}); err != nil {
		return err
	}

	if t.recorder != nil {
		opts := audit.Options{
			Details: map[string]string{
				"reason":           reason,
				"duration_minutes": strconv.Itoa(int(t.cfg.LockDuration.Minutes())),
			},
		}
		// Email identifiers stay out of the user ID field; they are
		// identifiers, not confirmed account references.
		if !strings.Contains(identifier, "@") {
			opts.UserID = identifier
		}
		t.recorder.Record(audit.TypeAccountLocked, opts)
	}
	return nil
}

// Unlock removes any lock for the identifier.
func (t *Tracker) Unlock(ctx context.Context, identifier string) error {
	return t.store.Delete(ctx, identifier)
}

// CheckAndLockOnFailure is called after a failed login has been recorded
// in the audit log. It counts recent failures and locks the identifier
// when the threshold is reached, returning the resulting state and the
// observed attempt count.
func (t *Tracker) CheckAndLockOnFailure(ctx context.Context, identifier string) (locked bool, attempts int, err error) {
	attempts = t.failures.CountFailedLogins(identifier, t.cfg.Window)
	if attempts < t.cfg.MaxAttempts {
		return false, attempts, nil
	}
	if err := t.Lock(ctx, identifier, ""); err != nil {
		return false, attempts, err
	}
	return true, attempts, nil
}
