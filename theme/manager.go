package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
)

//go:embed templates
var Templates embed.FS

// DefaultScheme is served when a caller asks for a scheme that does not exist.
const DefaultScheme = "light"

// Manager holds the parsed page stylesheet and its color schemes.
type Manager struct {
	tmpl   *Template
	order  []string
	logger *zap.Logger
}

// NewManager loads the first template under templates/ in fsys that defines
// at least one scheme.
func NewManager(fsys fs.FS, logger *zap.Logger) (*Manager, error) {
	entries, err := fs.ReadDir(fsys, "templates")
	if err != nil {
		return nil, fmt.Errorf("read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".css") {
			continue
		}
		content, err := fs.ReadFile(fsys, "templates/"+entry.Name())
		if err != nil {
			logger.Warn("failed to read template", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		name, schemes, base := Parse(string(content))
		if len(schemes) == 0 {
			logger.Warn("no schemes found in template", zap.String("file", entry.Name()))
			continue
		}
		if name == "" {
			name = strings.TrimSuffix(entry.Name(), ".css")
		}

		m := &Manager{
			tmpl:   &Template{Name: name, BaseCSS: base, Schemes: make(map[string]Scheme, len(schemes))},
			logger: logger,
		}
		for _, s := range schemes {
			m.tmpl.Schemes[s.Name] = s
			m.order = append(m.order, s.Name)
		}
		sortSchemes(m.order)

		logger.Info("loaded theme template",
			zap.String("template", name),
			zap.Strings("schemes", m.order))
		return m, nil
	}
	return nil, fmt.Errorf("no usable theme template found")
}

// light first, then dark, then anything else alphabetically
func sortSchemes(names []string) {
	rank := func(n string) int {
		switch n {
		case "light":
			return 0
		case "dark":
			return 1
		}
		return 2
	}
	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}

func (m *Manager) Name() string { return m.tmpl.Name }

// CSS returns the scheme rules followed by the base rules. Unknown schemes
// fall back to DefaultScheme.
func (m *Manager) CSS(scheme string) string {
	s, ok := m.tmpl.Schemes[scheme]
	if !ok {
		s, ok = m.tmpl.Schemes[DefaultScheme]
		if !ok {
			return m.tmpl.BaseCSS
		}
	}
	return s.CSS + "\n" + m.tmpl.BaseCSS
}

// Schemes lists the schemes in display order.
func (m *Manager) Schemes() []Scheme {
	out := make([]Scheme, 0, len(m.order))
	for _, n := range m.order {
		out = append(out, m.tmpl.Schemes[n])
	}
	return out
}

func (m *Manager) HasScheme(name string) bool {
	_, ok := m.tmpl.Schemes[name]
	return ok
}

// AllCSS concatenates every scheme and the base rules.
func (m *Manager) AllCSS() string {
	var b strings.Builder
	for _, s := range m.Schemes() {
		b.WriteString(s.CSS)
		b.WriteString("\n")
	}
	b.WriteString(m.tmpl.BaseCSS)
	return b.String()
}
