package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionsDefaults(t *testing.T) {
	opts, err := ParseOptions("", "  ")
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
	assert.Equal(t, NoRepeat, opts.Repeat)
	assert.Equal(t, CenterCenter, opts.Position)
}

func TestParseOptionsNormalizes(t *testing.T) {
	opts, err := ParseOptions(" Repeat-Y ", "RIGHT   top")
	require.NoError(t, err)
	assert.Equal(t, RepeatY, opts.Repeat)
	assert.Equal(t, RightTop, opts.Position)
}

func TestParseOptionsRejectsUnknown(t *testing.T) {
	_, err := ParseOptions("tile", "")
	assert.ErrorIs(t, err, ErrUnknownRepeat)

	_, err = ParseOptions("", "middle")
	assert.ErrorIs(t, err, ErrUnknownPosition)
}

func TestPositionsAreNine(t *testing.T) {
	assert.Len(t, Positions, 9)
	seen := map[Position]bool{}
	for _, p := range Positions {
		assert.False(t, seen[p], "duplicate %s", p)
		seen[p] = true
	}
}

func TestParseTheme(t *testing.T) {
	for in, want := range map[string]ThemePreference{"light": ThemeLight, "DARK": ThemeDark, " system ": ThemeSystem} {
		got, err := ParseTheme(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseTheme("sepia")
	assert.ErrorIs(t, err, ErrUnknownTheme)
}

func TestButtonLabel(t *testing.T) {
	assert.Equal(t, "Paste", ButtonEmpty.Label())
	assert.Equal(t, "Clear", ButtonHasContent.Label())
}

func TestDeclarationOnlyForValid(t *testing.T) {
	assert.Empty(t, CSSResult{Kind: ResultInvalid}.Declaration())
	assert.Equal(t, `background-image: url("data:x");`, CSSResult{Kind: ResultValid, DataURI: "data:x"}.Declaration())
}
