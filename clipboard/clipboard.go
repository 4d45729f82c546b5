// Package clipboard adapts the host clipboard for the converter.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// ErrUnavailable means the platform has no clipboard utility to talk to.
var ErrUnavailable = errors.New("clipboard unavailable")

// System reads and writes the OS clipboard.
type System struct{}

func (System) Write(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return run(ctx, func() error { return clipboard.WriteAll(text) })
}

func (System) Read(ctx context.Context) (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	var text string
	err := run(ctx, func() error {
		var err error
		text, err = clipboard.ReadAll()
		return err
	})
	return text, err
}

// run lets ctx abandon a clipboard helper process that hangs.
func run(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OSC52 copies by emitting an OSC 52 escape sequence, which most terminal
// emulators turn into a clipboard write. It cannot read.
type OSC52 struct {
	mu  sync.Mutex
	out io.Writer
	// Tmux wraps the sequence in a tmux passthrough.
	Tmux bool
}

func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out}
}

func (o *OSC52) Copy(_ context.Context, text string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	seq := osc52.New(text)
	if o.Tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(o.out); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}
