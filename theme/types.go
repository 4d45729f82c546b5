package theme

// Metadata is the header comment that introduces a scheme block.
type Metadata struct {
	Template string
	Scheme   string
	Accent   string
	Display  string
}

// Scheme is one color scheme of a stylesheet template.
type Scheme struct {
	Name    string `json:"name"`
	Display string `json:"display"`
	Accent  string `json:"accent"`
	CSS     string `json:"-"`
}

// Template is a parsed stylesheet: its schemes plus the shared base rules.
type Template struct {
	Name    string
	BaseCSS string
	Schemes map[string]Scheme
}
