package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// Sink receives audit events. Implementations must be safe for
// concurrent use; Write should not block for long, or should be wrapped
// in a Dispatcher.
type Sink interface {
	Write(event Event)
}

// NoOpSink discards every event.
type NoOpSink struct{}

func (NoOpSink) Write(Event) {}

// ChannelSink forwards events to a caller-owned channel, dropping when
// the channel is full.
type ChannelSink struct {
	C chan Event
}

// NewChannelSink creates a sink buffering up to size events.
func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{C: make(chan Event, size)}
}

func (s *ChannelSink) Write(event Event) {
	select {
	case s.C <- event:
	default:
	}
}

// JSONWriterSink writes one JSON object per line to an io.Writer.
type JSONWriterSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONWriterSink creates a sink encoding events to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{enc: json.NewEncoder(w)}
}

func (s *JSONWriterSink) Write(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(event)
}

// SlogSink emits events through a structured logger, mapping event
// severity to the slog level.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink logging through logger; nil uses the
// default logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Write(event Event) {
	level := slog.LevelInfo
	switch event.Severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError, SeverityCritical:
		level = slog.LevelError
	}

	attrs := []any{
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
	}
	if event.UserID != "" {
		attrs = append(attrs, slog.String("user_id", event.UserID))
	}
	if event.IP != "" {
		attrs = append(attrs, slog.String("ip", event.IP))
	}
	for k, v := range event.Details {
		attrs = append(attrs, slog.String(k, v))
	}

	s.logger.Log(context.Background(), level, "audit event", attrs...)
}
