package api

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"svgcss/catalog"
	"svgcss/controller"
	"svgcss/model"
	"svgcss/preview"
	"svgcss/raster"
	"svgcss/theme"
	"svgcss/web"
)

const (
	maxBodyBytes     = 1 << 20
	clipboardTimeout = 30 * time.Second
	prefersColorHint = "Sec-CH-Prefers-Color-Scheme"
)

type Deps struct {
	Catalog     *catalog.Catalog
	Themes      *theme.Manager
	Prefs       controller.PreferenceStore
	PreviewSize int
	Version     string
	Logger      *zap.Logger
}

type Server struct {
	catalog     *catalog.Catalog
	themes      *theme.Manager
	prefs       controller.PreferenceStore
	previewSize int
	version     string
	index       *template.Template
	hub         *Hub
	upgrader    websocket.Upgrader
	logger      *zap.Logger
}

func NewServer(d Deps) (*Server, error) {
	index, err := web.Index()
	if err != nil {
		return nil, err
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.PreviewSize <= 0 {
		d.PreviewSize = raster.DefaultSize
	}
	return &Server{
		catalog:     d.Catalog,
		themes:      d.Themes,
		prefs:       d.Prefs,
		previewSize: d.PreviewSize,
		version:     d.Version,
		index:       index,
		hub:         NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		logger: d.Logger.Named("api"),
	}, nil
}

// Handler returns every route wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return Chain(mux, RequestLogger(s.logger))
}

func (s *Server) Register(mux *http.ServeMux) {
	th := theme.NewHandler(s.themes)

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/app.js", s.handleScript)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/convert", s.handleConvert)
	mux.HandleFunc("/api/preview", s.handlePreview)
	mux.HandleFunc("/api/preview.png", s.handlePreviewPNG)
	mux.HandleFunc("/api/examples", s.handleExamples)
	mux.HandleFunc("/api/examples/", s.handleExampleByName)
	mux.HandleFunc("/api/preference", s.handlePreference)
	mux.HandleFunc("/api/ws", s.handleWS)
	mux.HandleFunc("/api/theme", th.HandleTheme)
	mux.HandleFunc("/api/schemes", th.HandleSchemes)
	mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.hub.Len()})
}

// ---------- page ----------

type indexData struct {
	Title     string
	Scheme    string
	Theme     model.ThemePreference
	Themes    []model.ThemePreference
	Repeat    model.Repeat
	Repeats   []model.Repeat
	Position  model.Position
	Positions []model.Position
	Examples  []catalog.Example
	Version   string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	pref := s.loadTheme(r.Context())
	opts := model.DefaultOptions()
	data := indexData{
		Title:     "SVG to CSS background",
		Scheme:    theme.SchemeFor(theme.Resolve(pref, theme.PrefersDarkHint(r.Header.Get(prefersColorHint)))),
		Theme:     pref,
		Themes:    []model.ThemePreference{model.ThemeSystem, model.ThemeLight, model.ThemeDark},
		Repeat:    opts.Repeat,
		Repeats:   model.Repeats,
		Position:  opts.Position,
		Positions: model.Positions,
		Examples:  s.catalog.List(),
		Version:   s.version,
	}

	w.Header().Set("Accept-CH", prefersColorHint)
	w.Header().Set("Vary", prefersColorHint)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, data); err != nil {
		s.logger.Error("render index", zap.Error(err))
	}
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	content, err := web.FS.ReadFile("app.js")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	_, _ = w.Write(content)
}

func (s *Server) loadTheme(ctx context.Context) model.ThemePreference {
	if s.prefs == nil {
		return model.ThemeSystem
	}
	pref, err := s.prefs.LoadTheme(ctx)
	if err != nil {
		s.logger.Warn("load theme preference", zap.Error(err))
		return model.ThemeSystem
	}
	return pref
}

// ---------- conversion ----------

type convertRequest struct {
	SVG      string `json:"svg"`
	CSS      string `json:"css,omitempty"`
	Repeat   string `json:"repeat,omitempty"`
	Position string `json:"position,omitempty"`
	Dark     bool   `json:"dark,omitempty"`
}

func (s *Server) decodeConvert(w http.ResponseWriter, r *http.Request) (convertRequest, model.BackgroundOptions, bool) {
	var req convertRequest
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return req, model.BackgroundOptions{}, false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return req, model.BackgroundOptions{}, false
	}
	opts, err := model.ParseOptions(req.Repeat, req.Position)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return req, model.BackgroundOptions{}, false
	}
	return req, opts, true
}

// handleConvert runs one stateless conversion through a throwaway controller
// and returns the resulting view.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := s.decodeConvert(w, r)
	if !ok {
		return
	}

	ctrl := controller.New(r.Context(), controller.Config{
		Prefs:      s.prefs,
		SystemDark: req.Dark || theme.PrefersDarkHint(r.Header.Get(prefersColorHint)),
		Logger:     s.logger,
	})
	ctrl.SetOptions(opts)
	view := ctrl.SetSource(req.SVG)
	countConversion(view.Result)

	writeJSON(w, http.StatusOK, view)
}

type previewResponse struct {
	Input  model.InputPreview  `json:"input_preview"`
	Output model.OutputPreview `json:"output_preview"`
}

// handlePreview renders previews for CSS the client may have edited by hand.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, opts, ok := s.decodeConvert(w, r)
	if !ok {
		return
	}
	in, out := preview.FromCSS(req.SVG, req.CSS, opts)
	writeJSON(w, http.StatusOK, previewResponse{Input: in, Output: out})
}

// handlePreviewPNG rasterizes the posted body: SVG markup, a data URI or a
// background-image declaration.
func (s *Server) handlePreviewPNG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	size := s.previewSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		size = n
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	img, err := raster.PNG(raster.Source(string(body)), size)
	if err != nil {
		if errors.Is(err, raster.ErrInvalidSVG) {
			http.Error(w, "invalid svg", http.StatusUnprocessableEntity)
			return
		}
		s.logger.Error("rasterize preview", zap.Error(err))
		http.Error(w, "failed to render preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

// ---------- examples ----------

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func (s *Server) handleExampleByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/examples/")
	ex, ok := s.catalog.Get(name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

// ---------- preference ----------

type preferenceBody struct {
	Theme model.ThemePreference `json:"theme"`
}

func (s *Server) handlePreference(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, preferenceBody{Theme: s.loadTheme(r.Context())})

	case http.MethodPut:
		var body struct {
			Theme string `json:"theme"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		pref, err := model.ParseTheme(body.Theme)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if s.prefs != nil {
			if err := s.prefs.SaveTheme(r.Context(), pref); err != nil {
				s.logger.Error("save theme preference", zap.Error(err))
				http.Error(w, "failed to save preference", http.StatusInternalServerError)
				return
			}
		}
		s.hub.BroadcastTheme("", pref)
		writeJSON(w, http.StatusOK, preferenceBody{Theme: pref})

	default:
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodPut)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ---------- live sessions ----------

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := newSession(conn, s.logger)
	osDark := r.URL.Query().Get("dark") == "1" || theme.PrefersDarkHint(r.Header.Get(prefersColorHint))
	sess.ctrl = controller.New(ctx, controller.Config{
		Clipboard:  sess,
		Prefs:      s.prefs,
		Listener:   sess,
		SystemDark: osDark,
		Logger:     sess.logger,
	})

	s.hub.Add(sess)
	defer s.hub.Remove(sess.id)
	sess.logger.Debug("session opened")

	sess.ViewChanged(sess.ctrl.View())

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.logger.Debug("session read", zap.Error(err))
			}
			sess.logger.Debug("session closed")
			return
		}
		s.dispatch(ctx, sess, msg)
	}
}

func (s *Server) dispatch(ctx context.Context, sess *session, msg wsMessage) {
	ctrl := sess.ctrl
	switch msg.Type {
	case "input":
		sess.seq.Store(msg.Seq)
		countConversion(ctrl.SetSource(msg.SVG).Result)

	case "example":
		ex, ok := s.catalog.Get(msg.Name)
		if !ok {
			sess.Notify(model.Notification{Message: "Unknown example", Error: true})
			return
		}
		countConversion(ctrl.LoadExample(ex.SVG).Result)

	case "options":
		opts, err := model.ParseOptions(msg.Repeat, msg.Position)
		if err != nil {
			sess.Notify(model.Notification{Message: "Invalid background option", Error: true})
			return
		}
		ctrl.SetOptions(opts)

	case "repeat":
		r, err := model.ParseRepeat(msg.Repeat)
		if err != nil {
			sess.Notify(model.Notification{Message: "Invalid background option", Error: true})
			return
		}
		ctrl.SetRepeat(r)

	case "position":
		p, err := model.ParsePosition(msg.Position)
		if err != nil {
			sess.Notify(model.Notification{Message: "Invalid background option", Error: true})
			return
		}
		ctrl.SetPosition(p)

	case "theme":
		pref, err := model.ParseTheme(msg.Theme)
		if err != nil {
			sess.Notify(model.Notification{Message: "Unknown theme", Error: true})
			return
		}
		ctrl.SelectTheme(ctx, pref)
		s.hub.BroadcastTheme(sess.id, pref)

	case "system_theme":
		ctrl.SystemThemeChanged(msg.Dark)

	// Clipboard round-trips wait on the page, so they must not block the
	// read loop that delivers the reply.
	case "copy":
		go func() {
			cctx, cancel := context.WithTimeout(ctx, clipboardTimeout)
			defer cancel()
			ctrl.RequestCopy(cctx)
		}()

	case "paste_or_clear":
		go func() {
			cctx, cancel := context.WithTimeout(ctx, clipboardTimeout)
			defer cancel()
			ctrl.RequestPasteOrClear(cctx)
		}()

	case "clipboard_text":
		sess.deliver(msg.Text, msg.Error)

	case "clipboard_ack":
		sess.acknowledge(msg.Error)

	default:
		sess.logger.Debug("unknown message", zap.String("type", msg.Type))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("writeJSON", zap.Error(err))
	}
}
