package gormstore

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"secretwall/config"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGormSlogLogger_DropsBindParams(t *testing.T) {
	l := NewLogger(slog.Default(), &config.Config{}).(*gormSlogLogger)

	sql, params := l.ParamsFilter(context.Background(), `UPDATE "users" SET "secret"=$1`, "my secret")
	assert.Equal(t, `UPDATE "users" SET "secret"=$1`, sql)
	assert.Nil(t, params)

	l.logParams = true
	_, params = l.ParamsFilter(context.Background(), "SELECT 1", "x")
	assert.Equal(t, []any{"x"}, params)
}

func TestGormSlogLogger_LevelFollowsDebug(t *testing.T) {
	cfg := &config.Config{}
	assert.Equal(t, logger.Warn, NewLogger(slog.Default(), cfg).(*gormSlogLogger).level)

	cfg.Env.Debug = true
	assert.Equal(t, logger.Info, NewLogger(slog.Default(), cfg).(*gormSlogLogger).level)
}

func TestGormSlogLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewLogger(base, &config.Config{})
	sqlFn := func() (string, int64) { return `SELECT * FROM "users"`, 0 }

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))
	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "boom")
}
