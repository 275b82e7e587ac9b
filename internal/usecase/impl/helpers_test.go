package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"secretwall/internal/domain/entity"
	"secretwall/internal/domain/service"
	"secretwall/internal/infra/persistence/gormstore"
	"secretwall/internal/infra/persistence/sqlite"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore opens a fresh in-memory sqlite database for one test.
func newTestStore(t *testing.T) *gormstore.Store {
	t.Helper()

	db, err := sqlite.Open(sqlite.MemoryDSN, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	return gormstore.NewStore(db)
}

// plainHasher keeps tests fast; bcrypt itself is covered in infra/auth.
type plainHasher struct {
	mu     sync.Mutex
	checks int
}

func (h *plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (h *plainHasher) Check(password, hash string) bool {
	h.mu.Lock()
	h.checks++
	h.mu.Unlock()

	return hash == "hashed:"+password
}

func (h *plainHasher) Checks() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.checks
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) { return "", errors.New("hash failed") }
func (failingHasher) Check(string, string) bool   { return false }

// fakeTokens uses the session id itself as the token.
type fakeTokens struct {
	issueErr error
}

func (f *fakeTokens) Issue(sessionID uuid.UUID, _ time.Time) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}

	return "tok-" + sessionID.String(), nil
}

func (f *fakeTokens) Parse(token string) (uuid.UUID, error) {
	raw, ok := strings.CutPrefix(token, "tok-")
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}

	return uuid.Parse(raw)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*entity.AccountEvent
	err    error
}

func (p *recordingPublisher) PublishAccountEvent(_ context.Context, event *entity.AccountEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []entity.AccountEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]entity.AccountEventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}

type fakeOAuthProvider struct {
	profile  *service.OAuthUser
	err      error
	lastCode string
}

func (p *fakeOAuthProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (p *fakeOAuthProvider) Exchange(_ context.Context, code string) (*service.OAuthUser, error) {
	p.lastCode = code
	if p.err != nil {
		return nil, p.err
	}

	return p.profile, nil
}

func (p *fakeOAuthProvider) GetProvider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}
