package theme

import (
	"encoding/json"
	"net/http"
)

// Handler serves the page stylesheet and the scheme list.
type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// HandleTheme serves the CSS for ?scheme=. "all" returns every scheme so the
// page can switch client-side; anything unknown gets the light scheme.
func (h *Handler) HandleTheme(w http.ResponseWriter, r *http.Request) {
	scheme := r.URL.Query().Get("scheme")

	var css string
	switch {
	case scheme == "all":
		css = h.manager.AllCSS()
	case h.manager.HasScheme(scheme):
		css = h.manager.CSS(scheme)
	default:
		css = h.manager.CSS(DefaultScheme)
	}

	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(css))
}

// HandleSchemes returns the available schemes as JSON.
func (h *Handler) HandleSchemes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if err := json.NewEncoder(w).Encode(h.manager.Schemes()); err != nil {
		http.Error(w, "failed to encode schemes", http.StatusInternalServerError)
	}
}
