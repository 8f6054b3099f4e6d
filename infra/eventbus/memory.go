package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
)

// MemoryEventBus dispatches events synchronously to in-process handlers.
type MemoryEventBus struct {
	handlers  map[events.EventType][]eventbus.HandlerFunc
	mu        sync.RWMutex
	logger    *slog.Logger
	record    bool
	published []events.Event
}

// MemoryOption configures a MemoryEventBus.
type MemoryOption func(*MemoryEventBus)

// WithRecording keeps every emitted event for Published. Only tests should
// use it: the slice is never trimmed.
func WithRecording() MemoryOption {
	return func(b *MemoryEventBus) { b.record = true }
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger, opts ...MemoryOption) *MemoryEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	b := &MemoryEventBus{
		handlers: make(map[events.EventType][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "memory"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all registered handlers for its type.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	eventType := events.EventType(event.Type())
	b.mu.Lock()
	if b.record {
		b.published = append(b.published, event)
	}
	handlers := append([]eventbus.HandlerFunc{}, b.handlers[eventType]...)
	b.mu.Unlock()

	for _, handler := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("panic recovered in event handler", "type", eventType, "panic", r)
				}
			}()
			if err := handler(ctx, event); err != nil {
				b.logger.Warn("event handler failed", "type", eventType, "error", err)
			}
		}()
	}
	return nil
}

// Published returns the events emitted so far when recording is on.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]events.Event, len(b.published))
	copy(out, b.published)
	return out
}

// ClearPublished forgets emitted events.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = b.published[:0]
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)
