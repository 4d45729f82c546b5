package model

// ResultKind tags a conversion outcome.
type ResultKind string

const (
	ResultEmpty   ResultKind = "empty"
	ResultValid   ResultKind = "valid"
	ResultInvalid ResultKind = "invalid"
)

// CSSResult is the outcome of converting one SVG source. DataURI is only set
// for valid results.
type CSSResult struct {
	Kind    ResultKind `json:"kind"`
	DataURI string     `json:"data_uri,omitempty"`
}

func (r CSSResult) Valid() bool { return r.Kind == ResultValid }

// Declaration returns the background-image line for a valid result.
func (r CSSResult) Declaration() string {
	if !r.Valid() {
		return ""
	}
	return `background-image: url("` + r.DataURI + `");`
}

type InputPreview struct {
	Placeholder string `json:"placeholder,omitempty"`
	Markup      string `json:"markup,omitempty"`
}

type Background struct {
	Image    string   `json:"image"`
	Size     string   `json:"size"`
	Repeat   Repeat   `json:"repeat"`
	Position Position `json:"position"`
}

type OutputPreview struct {
	Placeholder string      `json:"placeholder,omitempty"`
	Background  *Background `json:"background,omitempty"`
}

type ButtonState string

const (
	ButtonEmpty      ButtonState = "empty"
	ButtonHasContent ButtonState = "has_content"
)

// Label is the verb shown on the combined paste/clear button.
func (b ButtonState) Label() string {
	if b == ButtonHasContent {
		return "Clear"
	}
	return "Paste"
}

type Notification struct {
	Message string `json:"message"`
	Error   bool   `json:"error"`
}

// View is a snapshot of everything a surface needs to render.
type View struct {
	Source        string            `json:"source"`
	Result        ResultKind        `json:"result"`
	CSSText       string            `json:"css"`
	Button        ButtonState       `json:"button"`
	ButtonLabel   string            `json:"button_label"`
	Input         InputPreview      `json:"input_preview"`
	Output        OutputPreview     `json:"output_preview"`
	Options       BackgroundOptions `json:"options"`
	Theme         ThemePreference   `json:"theme"`
	EffectiveDark bool              `json:"effective_dark"`
}
