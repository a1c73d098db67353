package logger_test

import (
	"context"
	"testing"

	"grameego/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { logger.Set(nil) })

	for _, env := range []string{"production", "development", ""} {
		t.Run("env="+env, func(t *testing.T) {
			l := logger.Init(env)
			require.NotNil(t, l)
			assert.Same(t, l, logger.L())
		})
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := logger.WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", logger.RequestIDFrom(ctx))
	assert.Empty(t, logger.RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(nil) })

	t.Run("adds request id", func(t *testing.T) {
		ctx := logger.WithRequestID(context.Background(), "req-1")
		logger.FromCtx(ctx).Info("claimed")

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, "claimed", entries[0].Message)
		assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
	})

	t.Run("plain logger without request id", func(t *testing.T) {
		logger.FromCtx(context.Background()).Info("tick")

		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.NotContains(t, entries[0].ContextMap(), "request_id")
	})
}
