package audit

import (
	"sync"
	"testing"
	"time"
)

type countingSink struct {
	mu     sync.Mutex
	events []Event
	delay  time.Duration
}

func (s *countingSink) Write(event Event) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

func (s *countingSink) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestDispatcherDelivers(t *testing.T) {
	sink := &countingSink{}
	d := NewDispatcher(sink, DispatcherConfig{BufferSize: 16})

	for i := 0; i < 10; i++ {
		d.Write(Event{Type: TypeLoginSuccess})
	}
	d.Close()

	if sink.len() != 10 {
		t.Fatalf("expected 10 delivered events, got %d", sink.len())
	}
	if d.Dropped() != 0 {
		t.Fatalf("expected no drops, got %d", d.Dropped())
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	sink := &countingSink{delay: 50 * time.Millisecond}
	d := NewDispatcher(sink, DispatcherConfig{BufferSize: 1, DropIfFull: true})

	for i := 0; i < 20; i++ {
		d.Write(Event{Type: TypeLoginSuccess})
	}
	dropped := d.Dropped()
	d.Close()

	if dropped == 0 {
		t.Fatal("expected drops with a slow sink and tiny buffer")
	}
	if got := uint64(sink.len()) + d.Dropped(); got != 20 {
		t.Fatalf("expected delivered+dropped == 20, got %d", got)
	}
}

func TestDispatcherCloseIdempotent(t *testing.T) {
	d := NewDispatcher(NoOpSink{}, DispatcherConfig{BufferSize: 4})
	d.Close()
	d.Close()
}

func TestDispatcherCloseDrains(t *testing.T) {
	sink := &countingSink{delay: time.Millisecond}
	d := NewDispatcher(sink, DispatcherConfig{BufferSize: 64})

	for i := 0; i < 32; i++ {
		d.Write(Event{Type: TypeLoginSuccess})
	}
	d.Close()

	if sink.len() != 32 {
		t.Fatalf("expected Close to drain all 32 events, got %d", sink.len())
	}
}
