package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSC52Copy(t *testing.T) {
	var buf bytes.Buffer
	o := NewOSC52(&buf)

	require.NoError(t, o.Copy(context.Background(), "background-image: none;"))
	out := buf.String()
	assert.Contains(t, out, "\x1b]52;c;")
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("background-image: none;")))
}

func TestOSC52Tmux(t *testing.T) {
	var buf bytes.Buffer
	o := NewOSC52(&buf)
	o.Tmux = true

	require.NoError(t, o.Copy(context.Background(), "x"))
	assert.Contains(t, buf.String(), "\x1bPtmux;")
}

func TestRunHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	block := make(chan struct{})
	defer close(block)
	err := run(ctx, func() error { <-block; return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunWrapsError(t *testing.T) {
	err := run(context.Background(), func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, run(ctx, func() error { return nil }))
}
