// Package app wires the services and registers the event handlers.
package app

import (
	"context"
	"log/slog"

	"github.com/amirasaad/invest/pkg/domain/events"
	"github.com/amirasaad/invest/pkg/eventbus"
	"github.com/amirasaad/invest/pkg/handler/email"
)

// setupEventBus registers all event handlers with the provided event Bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	logger := a.Deps.Logger

	a.setupAuditHandlers(bus, logger)
	if a.Deps.Mailer != nil {
		email.Register(bus, a.Deps.Mailer, a.Deps.Uow, logger)
	}
}

// setupAuditHandlers logs every domain event once it has been published.
func (a *App) setupAuditHandlers(bus eventbus.Bus, logger *slog.Logger) {
	log := logger.With("component", "audit")
	for eventType := range events.EventTypes {
		bus.Register(eventType, func(ctx context.Context, e events.Event) error {
			log.InfoContext(ctx, "event", "type", e.Type())
			return nil
		})
	}
}
