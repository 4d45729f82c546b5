// Package preview derives the two preview panes from a conversion result.
package preview

import (
	"bytes"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"svgcss/converter"
	"svgcss/model"
)

const (
	NoSVG        = "No SVG to preview"
	InvalidSVG   = "Invalid SVG"
	NoResult     = "No result to preview"
	NoURL        = "Could not extract URL"
	backgroundSz = "contain"
)

// Synchronize builds the input and output previews for the current source,
// its conversion result and the current background options.
func Synchronize(source string, result model.CSSResult, opts model.BackgroundOptions) (model.InputPreview, model.OutputPreview) {
	in := Input(source, result)
	if !result.Valid() {
		return in, model.OutputPreview{Placeholder: NoResult}
	}
	// Only hand-built results lack a URI; Convert always sets one.
	if result.DataURI == "" {
		return in, model.OutputPreview{Placeholder: NoURL}
	}
	return in, background(result.DataURI, opts)
}

// FromCSS is Synchronize for callers that only hold the CSS text, such as a
// declaration the user edited by hand.
func FromCSS(source, cssText string, opts model.BackgroundOptions) (model.InputPreview, model.OutputPreview) {
	result := converter.Convert(source)
	in := Input(source, result)
	if strings.TrimSpace(cssText) == "" || cssText == converter.ErrorText {
		return in, model.OutputPreview{Placeholder: NoResult}
	}
	uri, ok := ExtractURL(cssText)
	if !ok {
		return in, model.OutputPreview{Placeholder: NoURL}
	}
	return in, background(uri, opts)
}

// Input describes the input pane. The markup is rendered as-is.
func Input(source string, result model.CSSResult) model.InputPreview {
	switch {
	case strings.TrimSpace(source) == "":
		return model.InputPreview{Placeholder: NoSVG}
	case result.Kind == model.ResultInvalid:
		return model.InputPreview{Placeholder: InvalidSVG}
	}
	return model.InputPreview{Markup: source}
}

func background(uri string, opts model.BackgroundOptions) model.OutputPreview {
	return model.OutputPreview{Background: &model.Background{
		Image:    uri,
		Size:     backgroundSz,
		Repeat:   opts.Repeat,
		Position: opts.Position,
	}}
}

// ExtractURL returns the first quoted url(...) value in cssText.
func ExtractURL(cssText string) (string, bool) {
	l := css.NewLexer(parse.NewInputString(cssText))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return "", false
		case css.URLToken:
			inner := bytes.TrimSpace(data[len("url("):])
			inner = bytes.TrimSpace(bytes.TrimSuffix(inner, []byte(")")))
			if v, ok := unquote(inner); ok {
				return v, true
			}
		case css.FunctionToken:
			if !bytes.EqualFold(data, []byte("url(")) {
				continue
			}
			tt, data = l.Next()
			for tt == css.WhitespaceToken {
				tt, data = l.Next()
			}
			if tt == css.StringToken {
				if v, ok := unquote(data); ok {
					return v, true
				}
			}
		}
	}
}

func unquote(b []byte) (string, bool) {
	if len(b) < 2 {
		return "", false
	}
	q := b[0]
	if (q != '"' && q != '\'') || b[len(b)-1] != q {
		return "", false
	}
	v := string(b[1 : len(b)-1])
	return v, v != ""
}
