package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("Missing key reads as empty", func(t *testing.T) {
		val, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("Set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "token", "abc"))

		val, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", val)
	})

	t.Run("Remove clears the key", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "token", "abc"))
		require.NoError(t, s.Remove(ctx, "token"))

		val, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("Remove of an absent key is fine", func(t *testing.T) {
		assert.NoError(t, s.Remove(ctx, "never-set"))
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Round trip survives a new store instance", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")

		first := NewFileStore(path)
		require.NoError(t, first.Set(ctx, "token", "persisted"))

		second := NewFileStore(path)
		val, err := second.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "persisted", val)
	})

	t.Run("Missing file reads as empty", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))

		val, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("Remove persists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		s := NewFileStore(path)
		require.NoError(t, s.Set(ctx, "token", "abc"))
		require.NoError(t, s.Remove(ctx, "token"))

		val, err := NewFileStore(path).Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("Corrupt file reads as empty instead of failing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		s := NewFileStore(path)
		val, err := s.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("Keys are independent", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
		require.NoError(t, s.Set(ctx, "token", "user-tok"))
		require.NoError(t, s.Set(ctx, "adminToken", "admin-tok"))
		require.NoError(t, s.Remove(ctx, "token"))

		val, err := s.Get(ctx, "adminToken")
		require.NoError(t, err)
		assert.Equal(t, "admin-tok", val)
	})
}
