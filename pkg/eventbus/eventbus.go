package eventbus

import (
	"context"

	"github.com/amirasaad/invest/pkg/domain/events"
)

// HandlerFunc processes one event. A returned error is logged by the bus and
// never propagated to the emitter.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus publishes domain events to registered handlers.
type Bus interface {
	Register(eventType events.EventType, handler HandlerFunc)
	Emit(ctx context.Context, event events.Event) error
}
