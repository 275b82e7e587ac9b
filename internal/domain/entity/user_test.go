package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_UsernameAndSnapshot(t *testing.T) {
	id := uuid.New()

	local := &User{ID: id, Account: LocalAccount{Username: "alice", PasswordHash: "hash"}}
	assert.Equal(t, "alice", local.Username())
	assert.Equal(t, SessionSnapshot{UserID: id, Username: "alice"}, local.Snapshot())

	federated := &User{ID: id, Account: FederatedAccount{ProviderType: ProviderTypeGoogle, ProviderID: "g-1"}}
	assert.Empty(t, federated.Username())
	assert.Equal(t, SessionSnapshot{UserID: id}, federated.Snapshot())
}

func TestUser_HasSecret(t *testing.T) {
	user := &User{}
	assert.False(t, user.HasSecret())

	secret := ""
	user.Secret = &secret
	assert.True(t, user.HasSecret())
}

func TestAuthentication_RoundTripsAccount(t *testing.T) {
	userID := uuid.New()

	local := LocalAccount{Username: "bob", PasswordHash: "$2a$10$hash"}
	auth := NewAuthentication(userID, local)
	assert.Equal(t, ProviderTypeLocal, auth.Provider)
	assert.Equal(t, "bob", auth.ProviderUserID)
	assert.Equal(t, "$2a$10$hash", auth.PasswordHash)
	assert.Equal(t, local, auth.Account())

	federated := FederatedAccount{ProviderType: ProviderTypeGoogle, ProviderID: "g-42"}
	auth = NewAuthentication(userID, federated)
	assert.Equal(t, ProviderTypeGoogle, auth.Provider)
	assert.Empty(t, auth.PasswordHash)
	assert.Equal(t, federated, auth.Account())
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	session := &Session{ExpiresAt: now.Add(time.Minute)}

	assert.False(t, session.IsExpired(now))
	assert.True(t, session.IsExpired(now.Add(time.Minute)))
}
