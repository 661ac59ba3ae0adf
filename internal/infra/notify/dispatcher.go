// Package notify is the outbound edge for guest/host notifications. Delivery
// (email, push) belongs to the platform's notification service; this core
// only hands events over and never lets a delivery failure touch booking
// state.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogDispatcher satisfies shared.NotificationDispatcher by logging the event.
// Deployments wire a real dispatcher at the bootstrap layer.
type LogDispatcher struct {
	logger *slog.Logger
}

func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

func (d *LogDispatcher) Notify(_ context.Context, userID uuid.UUID, template string, payload map[string]any) {
	d.logger.Info("notification dispatched",
		"user_id", userID.String(),
		"template", template,
		"payload", payload,
	)
}
