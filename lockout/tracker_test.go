package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/nutrifit/authcore/audit"
)

type fixedCounter struct {
	count int
}

func (f *fixedCounter) CountFailedLogins(string, time.Duration) int {
	return f.count
}

func testConfig() Config {
	return Config{
		MaxAttempts:  5,
		Window:       15 * time.Minute,
		LockDuration: 30 * time.Minute,
	}
}

func TestLockAndIsLocked(t *testing.T) {
	log := audit.NewLog(audit.Config{}, nil)
	tr := NewTracker(NewMemoryStore(), log, log, testConfig())

	ctx := context.Background()
	if err := tr.Lock(ctx, "user-1", "suspicious activity"); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	status, err := tr.IsLocked(ctx, "user-1")
	if err != nil {
		t.Fatalf("IsLocked: %v", err)
	}
	if !status.Locked {
		t.Fatal("expected locked")
	}
	if status.Reason != "suspicious activity" {
		t.Fatalf("expected reason preserved, got %q", status.Reason)
	}
	if remaining := time.Until(status.LockedUntil); remaining < 29*time.Minute || remaining > 31*time.Minute {
		t.Fatalf("expected lock near LockDuration, got %v", remaining)
	}

	status, err = tr.IsLocked(ctx, "user-2")
	if err != nil {
		t.Fatalf("IsLocked: %v", err)
	}
	if status.Locked {
		t.Fatal("expected other identifier unlocked")
	}
}

func TestLockExpiresLazily(t *testing.T) {
	log := audit.NewLog(audit.Config{}, nil)
	store := NewMemoryStore()
	tr := NewTracker(store, log, log, testConfig())

	base := time.Now()
	tr.now = func() time.Time { return base }

	ctx := context.Background()
	if err := tr.Lock(ctx, "user-1", ""); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	tr.now = func() time.Time { return base.Add(31 * time.Minute) }
	status, err := tr.IsLocked(ctx, "user-1")
	if err != nil {
		t.Fatalf("IsLocked: %v", err)
	}
	if status.Locked {
		t.Fatal("expected lock expired")
	}

	rec, err := store.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec != nil {
		t.Fatal("expected expired record removed from store")
	}
}

func TestLockAuditEvent(t *testing.T) {
	log := audit.NewLog(audit.Config{}, nil)
	tr := NewTracker(NewMemoryStore(), log, log, testConfig())

	ctx := context.Background()
	if err := tr.Lock(ctx, "user-1", ""); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	events := log.Query(audit.Filter{Type: audit.TypeAccountLocked})
	if len(events) != 1 {
		t.Fatalf("expected 1 account_locked event, got %d", len(events))
	}
	event := events[0]
	if event.Severity != audit.SeverityError {
		t.Fatalf("expected ERROR severity, got %s", event.Severity)
	}
	if event.UserID != "user-1" {
		t.Fatalf("expected user ID on event, got %q", event.UserID)
	}
	if event.Details["reason"] != "multiple failed login attempts" {
		t.Fatalf("expected default reason, got %q", event.Details["reason"])
	}
	if event.Details["duration_minutes"] != "30" {
		t.Fatalf("expected duration detail 30, got %q", event.Details["duration_minutes"])
	}
}

func TestLockEmailIdentifierOmitsUserID(t *testing.T) {
	log := audit.NewLog(audit.Config{}, nil)
	tr := NewTracker(NewMemoryStore(), log, log, testConfig())

	if err := tr.Lock(context.Background(), "alice@example.com", ""); err != nil {
		t.Fatalf("Lock: %v", err)
	}

	events := log.Query(audit.Filter{Type: audit.TypeAccountLocked})
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].UserID != "" {
		t.Fatalf("expected empty user ID for email identifier, got %q", events[0].UserID)
	}
}

func TestUnlock(t *testing.T) {
	log := audit.NewLog(audit.Config{}, nil)
	tr := NewTracker(NewMemoryStore(), log, log, testConfig())

	ctx := context.Background()
	if err := tr.Lock(ctx, "user-1", ""); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := tr.Unlock(ctx, "user-1"); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	status, err := tr.IsLocked(ctx, "user-1")
	if err != nil {
		t.Fatalf("IsLocked: %v", err)
	}
	if status.Locked {
		t.Fatal("expected unlocked after Unlock")
	}
}

func TestCheckAndLockOnFailure(t *testing.T) {
	counter := &fixedCounter{count: 4}
	log := audit.NewLog(audit.Config{}, nil)
	tr := NewTracker(NewMemoryStore(), counter, log, testConfig())

	ctx := context.Background()
	locked, attempts, err := tr.CheckAndLockOnFailure(ctx, "user-1")
	if err != nil {
		t.Fatalf("CheckAndLockOnFailure: %v", err)
	}
	if locked || attempts != 4 {
		t.Fatalf("expected unlocked at 4 attempts, got locked=%v attempts=%d", locked, attempts)
	}

	counter.count = 5
	locked, attempts, err = tr.CheckAndLockOnFailure(ctx, "user-1")
	if err != nil {
		t.Fatalf("CheckAndLockOnFailure: %v", err)
	}
	if !locked || attempts != 5 {
		t.Fatalf("expected locked at 5 attempts, got locked=%v attempts=%d", locked, attempts)
	}

	status, err := tr.IsLocked(ctx, "user-1")
	if err != nil {
		t.Fatalf("IsLocked: %v", err)
	}
	if !status.Locked {
		t.Fatal("expected active lock after threshold")
	}
}
