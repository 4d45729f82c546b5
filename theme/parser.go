package theme

import (
	"strings"
)

const baseMarker = "/* Base CSS"

// ParseMetadata reads the key/value lines of the first comment in block.
func ParseMetadata(block string) Metadata {
	meta := Metadata{Accent: "#4f46e5"}

	start := strings.Index(block, "/*")
	if start == -1 {
		return meta
	}
	end := strings.Index(block[start:], "*/")
	if end == -1 {
		return meta
	}

	for _, line := range strings.Split(block[start+2:start+end], "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Template":
			meta.Template = value
		case "Scheme":
			meta.Scheme = value
		case "Accent":
			meta.Accent = value
		case "Display":
			meta.Display = value
		}
	}
	return meta
}

// Parse splits a template into its schemes and base CSS. A scheme is a
// metadata comment naming Template and Scheme followed by its rules up to the
// next comment.
func Parse(content string) (name string, schemes []Scheme, baseCSS string) {
	body := content
	if i := strings.Index(content, baseMarker); i != -1 {
		body = content[:i]
		rest := content[i:]
		if j := strings.Index(rest, "*/"); j != -1 {
			baseCSS = strings.TrimSpace(rest[j+2:])
		}
	}

	seen := make(map[string]bool)
	pos := 0
	for pos < len(body) {
		start := strings.Index(body[pos:], "/*")
		if start == -1 {
			break
		}
		start += pos
		end := strings.Index(body[start:], "*/")
		if end == -1 {
			break
		}
		end += start + 2

		meta := ParseMetadata(body[start:end])
		next := strings.Index(body[end:], "/*")
		if next == -1 {
			next = len(body)
		} else {
			next += end
		}
		pos = next

		if meta.Template == "" || meta.Scheme == "" || seen[meta.Scheme] {
			continue
		}
		seen[meta.Scheme] = true
		if name == "" {
			name = meta.Template
		}

		css := strings.TrimSpace(body[end:next])
		selector := `[data-scheme="` + meta.Scheme + `"]`
		if !strings.HasPrefix(css, selector) {
			css = selector + " " + css
		}
		display := meta.Display
		if display == "" {
			display = strings.ToUpper(meta.Scheme[:1]) + meta.Scheme[1:]
		}
		schemes = append(schemes, Scheme{
			Name:    meta.Scheme,
			Display: display,
			Accent:  meta.Accent,
			CSS:     css,
		})
	}
	return name, schemes, baseCSS
}
