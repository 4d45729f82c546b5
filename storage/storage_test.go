package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svgcss/model"
)

func openTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(context.Background(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestGetSet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, t.TempDir())

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", "one"))
	require.NoError(t, s.Set(ctx, "k", "two"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestThemeDefaultsToSystem(t *testing.T) {
	s := openTestStore(t, t.TempDir())

	pref, err := s.Theme().LoadTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.ThemeSystem, pref)
}

func TestThemeIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, t.TempDir())
	require.NoError(t, s.Set(ctx, themeKey, "sepia"))

	pref, err := s.Theme().LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeSystem, pref)
}

func TestThemePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, first.Theme().SaveTheme(ctx, model.ThemeDark))
	require.NoError(t, first.Close())

	second := openTestStore(t, dir)
	pref, err := second.Theme().LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, pref)
}
