package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownRepeat   = errors.New("unknown background-repeat value")
	ErrUnknownPosition = errors.New("unknown background-position value")
	ErrUnknownTheme    = errors.New("unknown theme preference")
)

type Repeat string

const (
	RepeatBoth Repeat = "repeat"
	NoRepeat   Repeat = "no-repeat"
	RepeatX    Repeat = "repeat-x"
	RepeatY    Repeat = "repeat-y"
)

var Repeats = []Repeat{RepeatBoth, NoRepeat, RepeatX, RepeatY}

func ParseRepeat(s string) (Repeat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range Repeats {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRepeat, s)
}

type Position string

const (
	LeftTop      Position = "left top"
	LeftCenter   Position = "left center"
	LeftBottom   Position = "left bottom"
	CenterTop    Position = "center top"
	CenterCenter Position = "center center"
	CenterBottom Position = "center bottom"
	RightTop     Position = "right top"
	RightCenter  Position = "right center"
	RightBottom  Position = "right bottom"
)

var Positions = []Position{
	LeftTop, LeftCenter, LeftBottom,
	CenterTop, CenterCenter, CenterBottom,
	RightTop, RightCenter, RightBottom,
}

// ParsePosition accepts the keyword pair with any spacing or case.
func ParsePosition(s string) (Position, error) {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	for _, p := range Positions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

type BackgroundOptions struct {
	Repeat   Repeat   `json:"repeat"`
	Position Position `json:"position"`
}

func DefaultOptions() BackgroundOptions {
	return BackgroundOptions{Repeat: NoRepeat, Position: CenterCenter}
}

// ParseOptions fills blanks with the defaults.
func ParseOptions(repeat, position string) (BackgroundOptions, error) {
	opts := DefaultOptions()
	if strings.TrimSpace(repeat) != "" {
		r, err := ParseRepeat(repeat)
		if err != nil {
			return opts, err
		}
		opts.Repeat = r
	}
	if strings.TrimSpace(position) != "" {
		p, err := ParsePosition(position)
		if err != nil {
			return opts, err
		}
		opts.Position = p
	}
	return opts, nil
}

type ThemePreference string

const (
	ThemeLight  ThemePreference = "light"
	ThemeDark   ThemePreference = "dark"
	ThemeSystem ThemePreference = "system"
)

func ParseTheme(s string) (ThemePreference, error) {
	switch ThemePreference(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	case ThemeSystem:
		return ThemeSystem, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
}
