package lockout

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rec, err := s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record for missing identifier")
	}

	want := Record{LockedUntil: time.Now().Add(time.Hour).UTC(), Reason: "test"}
	if err := s.Put(ctx, "user-1", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec, err = s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec == nil || !rec.LockedUntil.Equal(want.LockedUntil) || rec.Reason != "test" {
		t.Fatalf("unexpected record %+v", rec)
	}

	if err := s.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	rec, _ = s.Get(ctx, "user-1")
	if rec != nil {
		t.Fatal("expected record removed")
	}
}

func TestRedisStoreRoundtrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore(client, "lk")
	ctx := context.Background()

	rec, err := s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil record for missing identifier")
	}

	want := Record{LockedUntil: time.Now().Add(time.Hour).UTC(), Reason: "test"}
	if err := s.Put(ctx, "user-1", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rec, err = s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec == nil || !rec.LockedUntil.Equal(want.LockedUntil) || rec.Reason != "test" {
		t.Fatalf("unexpected record %+v", rec)
	}

	if err := s.Delete(ctx, "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	rec, _ = s.Get(ctx, "user-1")
	if rec != nil {
		t.Fatal("expected record removed")
	}
}

func TestRedisStoreTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore(client, "lk")
	ctx := context.Background()

	if err := s.Put(ctx, "user-1", Record{LockedUntil: time.Now().Add(time.Minute)}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Minute)
	rec, err := s.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec != nil {
		t.Fatal("expected record evicted by TTL")
	}
}
