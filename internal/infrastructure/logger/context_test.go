package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		l := zap.NewNop()
		ctx := WithContext(context.Background(), l)
		assert.Same(t, l, FromContext(ctx))
	})

	t.Run("returns noop for bare context", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestWithRequestID(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-1")
	assert.Equal(t, "req-1", GetRequestID(ctx))
}

func TestWithScope(t *testing.T) {
	t.Run("stores both components", func(t *testing.T) {
		ctx, _ := WithScope(context.Background(), zap.NewNop(), "s1", "d1")
		assert.Equal(t, "s1", GetStoreID(ctx))
		assert.Equal(t, "d1", GetDeviceID(ctx))
	})

	t.Run("skips empty components", func(t *testing.T) {
		ctx, _ := WithScope(context.Background(), zap.NewNop(), "s1", "")
		assert.Equal(t, "s1", GetStoreID(ctx))
		assert.Empty(t, GetDeviceID(ctx))
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("entries carry request and scope fields", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		base := zap.New(core)

		ctx, _ := WithRequestID(context.Background(), base, "req-9")
		ctx, _ = WithScope(ctx, base, "s1", "")
		ctx = WithContext(ctx, base)

		L(ctx).Info("reconciliation started")

		entries := logs.All()
		assert.Len(t, entries, 1)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "s1", fields["store_id"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		cl := &ContextLogger{ctx: context.Background()}
		assert.NotPanics(t, func() { cl.Info("noop") })
	})
}
