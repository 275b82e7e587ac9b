// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a person known to the system. Every user owns exactly one Account,
// which decides how they sign in, and at most one secret.
type User struct {
	ID        uuid.UUID // Assigned once at creation, never reused.
	Account   Account   // Either a LocalAccount or a FederatedAccount.
	Secret    *string   // Nil until the user submits a secret.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Username returns the local username, or "" for federated users.
func (u *User) Username() string {
	if local, ok := u.Account.(LocalAccount); ok {
		return local.Username
	}

	return ""
}

// HasSecret reports whether the user has submitted a secret.
func (u *User) HasSecret() bool {
	return u.Secret != nil
}

// Snapshot returns the identity subset that is kept in a session.
func (u *User) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		UserID:   u.ID,
		Username: u.Username(),
	}
}
