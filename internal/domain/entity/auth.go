package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType names the source of a sign-in credential.
type ProviderType string

const (
	ProviderTypeLocal  ProviderType = "local"
	ProviderTypeGoogle ProviderType = "google"
)

// Account is the sign-in identity of a User. The set of implementations is closed:
// LocalAccount and FederatedAccount.
type Account interface {
	// Provider returns where the credential lives.
	Provider() ProviderType
	// Subject returns the provider-unique key: the username for local accounts,
	// the provider's profile id for federated ones.
	Subject() string

	isAccount()
}

// LocalAccount signs in with a username and a bcrypt password hash.
// The salt is embedded in the hash string.
type LocalAccount struct {
	Username     string
	PasswordHash string
}

func (LocalAccount) Provider() ProviderType { return ProviderTypeLocal }
func (a LocalAccount) Subject() string      { return a.Username }
func (LocalAccount) isAccount()             {}

// FederatedAccount signs in through an external OAuth provider.
type FederatedAccount struct {
	ProviderType ProviderType
	ProviderID   string
}

func (a FederatedAccount) Provider() ProviderType { return a.ProviderType }
func (a FederatedAccount) Subject() string        { return a.ProviderID }
func (FederatedAccount) isAccount()               {}

// Authentication represents the stored credential row behind an Account.
type Authentication struct {
	ID             uuid.UUID    // The unique ID for this specific authentication record itself.
	UserID         uuid.UUID    // Links this authentication method to the User it belongs to.
	Provider       ProviderType // "local" or "google".
	ProviderUserID string       // Username for local accounts, Google profile id otherwise.
	PasswordHash   string       // Only set for local accounts.
	CreatedAt      time.Time
}

// NewAuthentication builds the storage row for an account owned by userID.
func NewAuthentication(userID uuid.UUID, account Account) *Authentication {
	auth := &Authentication{
		UserID:         userID,
		Provider:       account.Provider(),
		ProviderUserID: account.Subject(),
	}
	if local, ok := account.(LocalAccount); ok {
		auth.PasswordHash = local.PasswordHash
	}

	return auth
}

// Account rebuilds the Account variant from the stored row.
func (a *Authentication) Account() Account {
	if a.Provider == ProviderTypeLocal {
		return LocalAccount{
			Username:     a.ProviderUserID,
			PasswordHash: a.PasswordHash,
		}
	}

	return FederatedAccount{
		ProviderType: a.Provider,
		ProviderID:   a.ProviderUserID,
	}
}
