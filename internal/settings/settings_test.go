package settings

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joao-fontenele/storefront-crm/internal/persistence"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when nothing stored", func(t *testing.T) {
		s, err := Load(ctx, persistence.NewMemoryKV(), discard)
		require.NoError(t, err)
		assert.Equal(t, Default(), s)
		assert.Equal(t, 5, s.System.LowStockThreshold)
		assert.False(t, s.Notifications.CustomerRegistration)
	})

	t.Run("saved settings win", func(t *testing.T) {
		kv := persistence.NewMemoryKV()
		want := Default()
		want.Profile.Email = "owner@example.com"
		want.System.LowStockThreshold = 10
		require.NoError(t, Save(ctx, kv, want))

		got, err := Load(ctx, kv, discard)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("partial document keeps defaults", func(t *testing.T) {
		kv := persistence.NewMemoryKV()
		require.NoError(t, kv.Set(ctx, Key, []byte(`{"system":{"lowStockThreshold":2}}`)))

		got, err := Load(ctx, kv, discard)
		require.NoError(t, err)
		assert.Equal(t, 2, got.System.LowStockThreshold)
		assert.Equal(t, "RUB", got.System.Currency)
		assert.Equal(t, Default().Profile, got.Profile)
	})

	t.Run("corrupt document falls back to defaults", func(t *testing.T) {
		kv := persistence.NewMemoryKV()
		require.NoError(t, kv.Set(ctx, Key, []byte(`{"system":`)))

		got, err := Load(ctx, kv, discard)
		require.NoError(t, err)
		assert.Equal(t, Default(), got)
	})
}
