package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountEventType names an account lifecycle event.
type AccountEventType string

const (
	AccountEventUserRegistered  AccountEventType = "user.registered"
	AccountEventSecretSubmitted AccountEventType = "secret.submitted"
)

// AccountEvent is published after account state changes.
type AccountEvent struct {
	Type       AccountEventType `json:"type"`
	UserID     uuid.UUID        `json:"user_id"`
	Provider   ProviderType     `json:"provider,omitempty"`
	RequestID  string           `json:"request_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
