package theme

import (
	"context"
	"testing"

	"github.com/longkey1/chatc/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	store := NewStore(backend, "chatbot_theme", zap.NewNop())

	assert.Equal(t, Light, store.Get(ctx))

	require.NoError(t, store.Set(ctx, Dark))
	assert.Equal(t, Dark, store.Get(ctx))

	v, err := backend.Get(ctx, "chatbot_theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)

	next, err := store.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Light, next)

	next, err = store.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dark, next)

	assert.Error(t, store.Set(ctx, Theme("solarized")))
	assert.Equal(t, Dark, store.Get(ctx))
}

func TestStoreIgnoresUnknownValue(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemoryStore()
	require.NoError(t, backend.Set(ctx, "chatbot_theme", "neon"))

	store := NewStore(backend, "chatbot_theme", nil)
	assert.Equal(t, Default, store.Get(ctx))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Theme
		wantErr bool
	}{
		{input: "light", want: Light},
		{input: "dark", want: Dark},
		{input: "Dark", wantErr: true},
		{input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
