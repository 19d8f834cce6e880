package kv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "chatc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(ctx, "chatbot_theme")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, store.Set(ctx, "chatbot_theme", "dark"))
			got, err := store.Get(ctx, "chatbot_theme")
			require.NoError(t, err)
			assert.Equal(t, "dark", got)

			require.NoError(t, store.Set(ctx, "chatbot_theme", "light"))
			got, err = store.Get(ctx, "chatbot_theme")
			require.NoError(t, err)
			assert.Equal(t, "light", got)

			require.NoError(t, store.Delete(ctx, "chatbot_theme"))
			_, err = store.Get(ctx, "chatbot_theme")
			assert.ErrorIs(t, err, ErrNotFound)

			// deleting twice is fine
			assert.NoError(t, store.Delete(ctx, "chatbot_theme"))

			assert.Error(t, store.Set(ctx, "../escape", "x"))
		})
	}
}

func TestFileStoreAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Set(context.Background(), "chatbot_history", `[]`))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "chatbot_history", entries[0].Name())
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "chatc.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "chatbot_history", `[{"text":"hi","type":"user","timestamp":"2025-01-01T00:00:00Z"}]`))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "chatbot_history")
	require.NoError(t, err)
	assert.Contains(t, got, `"text":"hi"`)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{key: "chatbot_history"},
		{key: "chatbot-theme.v2"},
		{key: "", wantErr: true},
		{key: "..", wantErr: true},
		{key: "a/b", wantErr: true},
		{key: "with space", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}
