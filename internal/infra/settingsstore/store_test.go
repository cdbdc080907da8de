//go:build unit

package settingsstore_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"turnos-service/internal/domain/booking"
	"turnos-service/internal/infra"
	"turnos-service/internal/infra/settingsstore"
	"turnos-service/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
	Get(ctx context.Context) (booking.Policy, error)
	Set(ctx context.Context, patch booking.PolicyPatch) (booking.Policy, error)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaults() booking.Policy {
	return booking.DefaultPolicy("admin@example.com")
}

var factories = map[string]func(t *testing.T) store{
	"memory": func(*testing.T) store { return settingsstore.NewMemory(defaults()) },
	"file": func(t *testing.T) store {
		return settingsstore.NewFile(filepath.Join(t.TempDir(), "settings.toml"), defaults(), discardLogger())
	},
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for name, newStore := range factories {
		t.Run(name+"/starts from defaults", func(t *testing.T) {
			got, err := newStore(t).Get(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(defaults(), got); diff != "" {
				t.Errorf("policy mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run(name+"/partial update keeps the other fields", func(t *testing.T) {
			s := newStore(t)
			updated, err := s.Set(ctx, booking.PolicyPatch{StartHour: ptr.Of(9)})
			require.NoError(t, err)

			want := defaults()
			want.StartHour = 9
			assert.Equal(t, want, updated)

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})

		t.Run(name+"/invalid result leaves the store untouched", func(t *testing.T) {
			s := newStore(t)
			_, err := s.Set(ctx, booking.PolicyPatch{StartHour: ptr.Of(21)})
			assert.ErrorIs(t, err, booking.ErrInvalidPolicy)

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, defaults(), got)
		})

		t.Run(name+"/empty days are kept empty", func(t *testing.T) {
			s := newStore(t)
			_, err := s.Set(ctx, booking.PolicyPatch{AllowedDays: ptr.Of([]int{})})
			require.NoError(t, err)

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.NotNil(t, got.AllowedDays)
			assert.Empty(t, got.AllowedDays)
		})

		t.Run(name+"/returned policy does not alias the store", func(t *testing.T) {
			s := newStore(t)
			got, err := s.Get(ctx)
			require.NoError(t, err)
			got.AllowedDays[0] = 0

			again, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, defaults().AllowedDays, again.AllowedDays)
		})

		t.Run(name+"/concurrent patches are not lost", func(t *testing.T) {
			s := newStore(t)
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := s.Set(ctx, booking.PolicyPatch{Enabled: ptr.Of(false)})
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := s.Set(ctx, booking.PolicyPatch{AdminNotifyEmail: ptr.Of("ops@example.com")})
				assert.NoError(t, err)
			}()
			wg.Wait()

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.False(t, got.Enabled)
			assert.Equal(t, "ops@example.com", got.AdminNotifyEmail)
		})
	}
}

func TestFile(t *testing.T) {
	ctx := context.Background()

	t.Run("survives a reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		_, err := settingsstore.NewFile(path, defaults(), discardLogger()).
			Set(ctx, booking.PolicyPatch{AllowedDays: ptr.Of([]int{5, 1, 1})})
		require.NoError(t, err)

		got, err := settingsstore.NewFile(path, defaults(), discardLogger()).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 5}, got.AllowedDays)
		assert.Equal(t, "admin@example.com", got.AdminNotifyEmail)
	})

	t.Run("writes toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		_, err := settingsstore.NewFile(path, defaults(), discardLogger()).
			Set(ctx, booking.PolicyPatch{Enabled: ptr.Of(false)})
		require.NoError(t, err)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "enabled = false")
		assert.Contains(t, string(b), `calendar_email = "admin@example.com"`)
	})

	t.Run("corrupt file is a store failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("enabled = [not toml"), 0o600))

		_, err := settingsstore.NewFile(path, defaults(), discardLogger()).Get(ctx)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindStoreFailure))
	})

	t.Run("missing directory is a store failure", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "settings.toml")
		_, err := settingsstore.NewFile(path, defaults(), discardLogger()).
			Set(ctx, booking.PolicyPatch{Enabled: ptr.Of(false)})
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindStoreFailure))
	})
}
