// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "secretwall/internal/delivery/context"
	"secretwall/internal/domain/entity"
	"secretwall/internal/domain/service"

	"github.com/google/uuid"
)

// newUserID returns a time-ordered id, falling back to a random one.
func newUserID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

// accountEvents publishes account events without failing the caller.
type accountEvents struct {
	publisher service.EventPublisher
	now       func() time.Time
}

func (e accountEvents) emit(ctx context.Context, logger *slog.Logger, eventType entity.AccountEventType, user *entity.User) {
	if e.publisher == nil {
		return
	}

	event := &entity.AccountEvent{
		Type:       eventType,
		UserID:     user.ID,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		OccurredAt: e.now().UTC(),
	}
	if user.Account != nil {
		event.Provider = user.Account.Provider()
	}

	if err := e.publisher.PublishAccountEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish account event",
			slog.String("event_type", string(eventType)),
			slog.Any("user_id", user.ID),
			slog.Any("error", err),
		)
	}
}
