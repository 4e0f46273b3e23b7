package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefs_PutGet(t *testing.T) {
	ctx := context.Background()
	p := createTestPrefs(t)

	_, ok, err := p.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.PutAll(ctx, map[string]string{"a": "1", "b": ""}))
	v, ok, err := p.Get(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	require.NoError(t, p.PutAll(ctx, map[string]string{"a": "2"}))
	got, err := p.GetAll(ctx, "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "2", "b": ""}, got)
}

func TestPrefs_Clear(t *testing.T) {
	ctx := context.Background()
	p := createTestPrefs(t)
	require.NoError(t, p.PutAll(ctx, map[string]string{"a": "1"}))
	require.NoError(t, p.Clear(ctx))

	got, err := p.GetAll(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got)
}
