package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	t.Run("Production", func(t *testing.T) {
		require.NoError(t, Init("production", "info"))
		assert.NotNil(t, L())
	})

	t.Run("Development", func(t *testing.T) {
		require.NoError(t, Init("development", ""))
		assert.NotNil(t, L())
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		assert.Error(t, Init("development", "loud"))
	})
}

func TestFromContext(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	defer restore()

	t.Run("WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc-123")
		FromContext(ctx, "catalog").Infow("fetched", "total", 3)

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		assert.Equal(t, "fetched", logs[0].Message)
		assert.Equal(t, "catalog", logs[0].LoggerName)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-abc-123", fields["request_id"])
		assert.EqualValues(t, 3, fields["total"])
	})

	t.Run("WithoutRequestID", func(t *testing.T) {
		FromContext(context.Background(), "catalog").Info("no id")

		logs := observed.TakeAll()
		require.Len(t, logs, 1)
		_, ok := logs[0].ContextMap()["request_id"]
		assert.False(t, ok)
	})
}

func TestRequestIDFrom(t *testing.T) {
	assert.Equal(t, "", RequestIDFrom(context.Background()))
	assert.Equal(t, "x", RequestIDFrom(WithRequestID(context.Background(), "x")))
}
