// Package converter turns SVG markup into a CSS background-image declaration
// carrying a base64 data URI.
package converter

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"svgcss/model"
)

const (
	// ErrorText is what an invalid source renders as.
	ErrorText = "/* Error: Invalid SVG code. Please check your input. */"

	dataURIPrefix = "data:image/svg+xml;base64,"
)

// Convert classifies and encodes svg. It never fails: anything that cannot be
// encoded is reported as an invalid result.
func Convert(svg string) model.CSSResult {
	clean := strings.TrimSpace(svg)
	if clean == "" {
		return model.CSSResult{Kind: model.ResultEmpty}
	}
	if !hasSVGPrefix(clean) || !utf8.ValidString(clean) {
		return model.CSSResult{Kind: model.ResultInvalid}
	}
	return model.CSSResult{
		Kind:    model.ResultValid,
		DataURI: dataURIPrefix + base64.StdEncoding.EncodeToString([]byte(clean)),
	}
}

func hasSVGPrefix(s string) bool {
	return len(s) >= 4 && strings.EqualFold(s[:4], "<svg")
}

// Render produces the CSS text shown to the user. Valid results get the
// current repeat and position appended.
func Render(result model.CSSResult, opts model.BackgroundOptions) string {
	switch result.Kind {
	case model.ResultValid:
		var b strings.Builder
		b.WriteString(result.Declaration())
		b.WriteString("\nbackground-repeat: ")
		b.WriteString(string(opts.Repeat))
		b.WriteString(";\nbackground-position: ")
		b.WriteString(string(opts.Position))
		b.WriteString(";")
		return b.String()
	case model.ResultInvalid:
		return ErrorText
	}
	return ""
}

// Decode returns the SVG markup embedded in a data URI produced by Convert.
func Decode(dataURI string) (string, bool) {
	payload, ok := strings.CutPrefix(dataURI, dataURIPrefix)
	if !ok {
		return "", false
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", false
	}
	return string(raw), true
}
