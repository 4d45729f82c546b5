package theme

import "svgcss/model"

// Resolve combines the stored preference with the operating system's dark
// mode signal. osDark only matters for the system preference.
func Resolve(pref model.ThemePreference, osDark bool) bool {
	switch pref {
	case model.ThemeDark:
		return true
	case model.ThemeLight:
		return false
	}
	return osDark
}

// SchemeFor maps the effective mode to a stylesheet scheme name.
func SchemeFor(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// PrefersDarkHint reads a Sec-CH-Prefers-Color-Scheme client hint value.
func PrefersDarkHint(v string) bool {
	return v == "dark" || v == `"dark"`
}
