// Package web holds the converter page and its script.
package web

import (
	"embed"
	"html/template"
)

//go:embed index.html app.js
var FS embed.FS

// Index parses the page template.
func Index() (*template.Template, error) {
	return template.ParseFS(FS, "index.html")
}
