package config

import (
	"testing"
	"time"

	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"session": map[string]any{
			"cookieName": "",
			"ttl":        "24h",
		},
		"googleOAuth": map[string]any{
			"clientSecret": "",
			"redirectUri":  "",
		},
		"storage": map[string]any{
			"autoMigrate": true,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SESSION_COOKIENAME", want: "session.cookieName"},
		{envKey: "SESSION_TTL", want: "session.ttl"},
		{envKey: "GOOGLEOAUTH_CLIENTSECRET", want: "googleOAuth.clientSecret"},
		{envKey: "GOOGLEOAUTH_REDIRECTURI", want: "googleOAuth.redirectUri"},
		{envKey: "STORAGE_AUTOMIGRATE", want: "storage.autoMigrate"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills session and storage defaults", func(t *testing.T) {
		cfg := &Config{}
		cfg.Storage.Driver = StorageDriverSQLite
		cfg.Session.Secret = "s3cr3t"

		require.NoError(t, cfg.applyDefaults())

		assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
		assert.Equal(t, defaultSessionCookieName, cfg.Session.CookieName)
		assert.Equal(t, defaultSessionTTL, cfg.Session.TTL)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		cfg := &Config{}
		cfg.Storage.Driver = StorageDriverSQLite
		cfg.Session.Secret = "s3cr3t"
		cfg.Session.CookieName = "sid"
		cfg.Session.TTL = time.Hour

		require.NoError(t, cfg.applyDefaults())

		assert.Equal(t, "sid", cfg.Session.CookieName)
		assert.Equal(t, time.Hour, cfg.Session.TTL)
	})

	t.Run("requires a session secret", func(t *testing.T) {
		cfg := &Config{}
		cfg.Storage.Driver = StorageDriverSQLite

		assert.Error(t, cfg.applyDefaults())
	})

	t.Run("postgres driver requires postgres config", func(t *testing.T) {
		cfg := &Config{}
		cfg.Session.Secret = "s3cr3t"

		assert.Error(t, cfg.applyDefaults())
		assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
	})

	t.Run("postgres driver accepts postgres config", func(t *testing.T) {
		cfg := &Config{Postgres: &postgres.DBConn{}}
		cfg.Session.Secret = "s3cr3t"

		assert.NoError(t, cfg.applyDefaults())
	})
}
