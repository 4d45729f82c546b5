// Package controller keeps the state of one converter session and turns
// user actions into fresh views and notifications.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"svgcss/converter"
	"svgcss/model"
	"svgcss/preview"
	"svgcss/theme"
)

// Notification messages.
const (
	MsgCopied      = "Copied to clipboard! ✓"
	MsgNothing     = "Nothing to copy!"
	MsgCopyFailed  = "Failed to copy to clipboard"
	MsgCleared     = "Input cleared"
	MsgPasted      = "Pasted from clipboard!"
	MsgPasteFailed = "Unable to read clipboard"
	MsgClipEmpty   = "Clipboard is empty"
	MsgExample     = "Example loaded!"
	MsgThemeFailed = "Could not save theme preference"
)

var errNoClipboard = errors.New("no clipboard configured")

// Clipboard is the primary copy sink and paste source.
type Clipboard interface {
	Write(ctx context.Context, text string) error
	Read(ctx context.Context) (string, error)
}

// Copier is the host's fallback copy mechanism, tried when Clipboard.Write
// fails.
type Copier interface {
	Copy(ctx context.Context, text string) error
}

// PreferenceStore persists the theme preference.
type PreferenceStore interface {
	LoadTheme(ctx context.Context) (model.ThemePreference, error)
	SaveTheme(ctx context.Context, pref model.ThemePreference) error
}

// Listener receives every new view and every notification.
type Listener interface {
	ViewChanged(model.View)
	Notify(model.Notification)
}

type Config struct {
	Clipboard Clipboard
	Fallback  Copier
	Prefs     PreferenceStore
	Listener  Listener
	// SystemDark is the operating system's dark mode signal at startup.
	SystemDark bool
	Logger     *zap.Logger
}

// Controller is safe for concurrent use; the last write to the source wins.
type Controller struct {
	mu         sync.Mutex
	source     string
	options    model.BackgroundOptions
	result     model.CSSResult
	pref       model.ThemePreference
	systemDark bool

	clipboard Clipboard
	fallback  Copier
	prefs     PreferenceStore
	listener  Listener
	logger    *zap.Logger
}

// New builds a controller with an empty source and default options. The
// stored theme preference is read once; a failing store means system.
func New(ctx context.Context, cfg Config) *Controller {
	c := &Controller{
		options:    model.DefaultOptions(),
		result:     converter.Convert(""),
		pref:       model.ThemeSystem,
		systemDark: cfg.SystemDark,
		clipboard:  cfg.Clipboard,
		fallback:   cfg.Fallback,
		prefs:      cfg.Prefs,
		listener:   cfg.Listener,
		logger:     cfg.Logger,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.prefs != nil {
		pref, err := c.prefs.LoadTheme(ctx)
		if err != nil {
			c.logger.Warn("load theme preference", zap.Error(err))
		} else if pref != "" {
			c.pref = pref
		}
	}
	return c
}

// SetSource replaces the SVG source, as when the user types.
func (c *Controller) SetSource(text string) model.View {
	c.mu.Lock()
	c.setSourceLocked(text)
	v := c.viewLocked()
	c.mu.Unlock()

	c.publish(v)
	return v
}

func (c *Controller) setSourceLocked(text string) {
	c.source = text
	c.result = converter.Convert(text)
}

// LoadExample replaces the source with a catalog entry.
func (c *Controller) LoadExample(svg string) model.View {
	v := c.SetSource(svg)
	c.notify(MsgExample, false)
	return v
}

// Button reports the state of the combined paste/clear button.
func (c *Controller) Button() model.ButtonState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return buttonFor(c.source)
}

func buttonFor(source string) model.ButtonState {
	if strings.TrimSpace(source) == "" {
		return model.ButtonEmpty
	}
	return model.ButtonHasContent
}

// RequestCopy hands the displayed CSS to the clipboard, falling back to the
// host copier. It reports whether anything was copied.
func (c *Controller) RequestCopy(ctx context.Context) bool {
	c.mu.Lock()
	text := converter.Render(c.result, c.options)
	c.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		c.notify(MsgNothing, true)
		return false
	}

	err := errNoClipboard
	if c.clipboard != nil {
		if err = c.clipboard.Write(ctx, text); err == nil {
			c.notify(MsgCopied, false)
			return true
		}
		c.logger.Debug("clipboard write failed, trying fallback", zap.Error(err))
	}
	if c.fallback != nil {
		if err = c.fallback.Copy(ctx, text); err == nil {
			c.notify(MsgCopied, false)
			return true
		}
	}
	c.logger.Warn("copy failed", zap.Error(err))
	c.notify(MsgCopyFailed, true)
	return false
}

// RequestPasteOrClear clears a non-empty source, or pastes the clipboard into
// an empty one.
func (c *Controller) RequestPasteOrClear(ctx context.Context) model.View {
	c.mu.Lock()
	state := buttonFor(c.source)
	if state == model.ButtonHasContent {
		c.setSourceLocked("")
		v := c.viewLocked()
		c.mu.Unlock()

		c.publish(v)
		c.notify(MsgCleared, false)
		return v
	}
	c.mu.Unlock()

	// The read happens unlocked so other actions are not held up; a late
	// result simply overwrites whatever is there by then.
	text, err := c.read(ctx)
	switch {
	case err != nil:
		c.logger.Warn("clipboard read failed", zap.Error(err))
		c.notify(MsgPasteFailed, true)
		return c.View()
	case strings.TrimSpace(text) == "":
		c.notify(MsgClipEmpty, true)
		return c.View()
	}

	v := c.SetSource(text)
	c.notify(MsgPasted, false)
	return v
}

func (c *Controller) read(ctx context.Context) (string, error) {
	if c.clipboard == nil {
		return "", errNoClipboard
	}
	return c.clipboard.Read(ctx)
}

// SetOptions changes repeat and position. The source is not reconverted.
func (c *Controller) SetOptions(opts model.BackgroundOptions) model.View {
	return c.updateOptions(func(o *model.BackgroundOptions) { *o = opts })
}

// SetRepeat changes only the repeat option.
func (c *Controller) SetRepeat(r model.Repeat) model.View {
	return c.updateOptions(func(o *model.BackgroundOptions) { o.Repeat = r })
}

// SetPosition changes only the position option.
func (c *Controller) SetPosition(p model.Position) model.View {
	return c.updateOptions(func(o *model.BackgroundOptions) { o.Position = p })
}

func (c *Controller) updateOptions(fn func(*model.BackgroundOptions)) model.View {
	c.mu.Lock()
	fn(&c.options)
	v := c.viewLocked()
	c.mu.Unlock()

	c.publish(v)
	return v
}

// SelectTheme persists pref and applies it immediately. A failed save still
// applies the theme for this session.
func (c *Controller) SelectTheme(ctx context.Context, pref model.ThemePreference) model.View {
	c.mu.Lock()
	c.pref = pref
	v := c.viewLocked()
	c.mu.Unlock()

	if c.prefs != nil {
		if err := c.prefs.SaveTheme(ctx, pref); err != nil {
			c.logger.Warn("save theme preference", zap.Error(err))
			c.notify(MsgThemeFailed, true)
		}
	}
	c.publish(v)
	return v
}

// ApplyTheme adopts a preference chosen elsewhere without saving it again.
func (c *Controller) ApplyTheme(pref model.ThemePreference) model.View {
	c.mu.Lock()
	c.pref = pref
	v := c.viewLocked()
	c.mu.Unlock()

	c.publish(v)
	return v
}

// SystemThemeChanged records a new OS dark mode signal. It only changes the
// effective mode while the preference is system.
func (c *Controller) SystemThemeChanged(dark bool) model.View {
	c.mu.Lock()
	c.systemDark = dark
	v := c.viewLocked()
	c.mu.Unlock()

	c.publish(v)
	return v
}

// View returns a snapshot of the current state.
func (c *Controller) View() model.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() model.View {
	in, out := preview.Synchronize(c.source, c.result, c.options)
	btn := buttonFor(c.source)
	return model.View{
		Source:        c.source,
		Result:        c.result.Kind,
		CSSText:       converter.Render(c.result, c.options),
		Button:        btn,
		ButtonLabel:   btn.Label(),
		Input:         in,
		Output:        out,
		Options:       c.options,
		Theme:         c.pref,
		EffectiveDark: theme.Resolve(c.pref, c.systemDark),
	}
}

func (c *Controller) publish(v model.View) {
	if c.listener != nil {
		c.listener.ViewChanged(v)
	}
}

func (c *Controller) notify(msg string, isErr bool) {
	if c.listener != nil {
		c.listener.Notify(model.Notification{Message: msg, Error: isErr})
	}
}
