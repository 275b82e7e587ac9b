package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"secretwall/config"
	"secretwall/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	userID := uuid.New()
	received := make(chan PubSubPushMessage, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))

		var msg PubSubPushMessage
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		received <- msg
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.Default())
	err := publisher.PublishAccountEvent(context.Background(), &entity.AccountEvent{
		Type:       entity.AccountEventUserRegistered,
		UserID:     userID,
		Provider:   entity.ProviderTypeLocal,
		RequestID:  "req-1",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	msg := <-received
	assert.Equal(t, localSubscription, msg.Subscription)
	assert.Equal(t, "user.registered", msg.Message.Attributes["type"])
	assert.Equal(t, userID.String(), msg.Message.Attributes["user_id"])

	data, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	require.NoError(t, err)

	var event entity.AccountEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, userID, event.UserID)
	assert.NoError(t, publisher.Close())
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	publisher := NewLocalHTTPPublisher(srv.URL, slog.Default())
	err := publisher.PublishAccountEvent(context.Background(), &entity.AccountEvent{Type: entity.AccountEventSecretSubmitted})
	assert.Error(t, err)
}

func TestNewEventPublisher_SelectsProvider(t *testing.T) {
	newParams := func(cfg *config.PubSubConfig) PublisherParams {
		return PublisherParams{
			Lc:     fxtest.NewLifecycle(t),
			Ctx:    context.Background(),
			Config: &config.Config{PubSub: cfg},
			Logger: slog.Default(),
		}
	}

	publisher, err := NewEventPublisher(newParams(nil))
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)

	publisher, err = NewEventPublisher(newParams(&config.PubSubConfig{Provider: ProviderNoop}))
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)

	publisher, err = NewEventPublisher(newParams(&config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://localhost:1"}))
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, publisher)

	_, err = NewEventPublisher(newParams(&config.PubSubConfig{Provider: ProviderLocal}))
	assert.Error(t, err)

	_, err = NewEventPublisher(newParams(&config.PubSubConfig{Provider: ProviderGoogle, TopicID: "t"}))
	assert.Error(t, err)

	_, err = NewEventPublisher(newParams(&config.PubSubConfig{Provider: "kafka"}))
	assert.Error(t, err)
}
