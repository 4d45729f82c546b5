package api

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"svgcss/controller"
	"svgcss/model"
)

// wsMessage is every frame exchanged on /api/ws, in both directions.
type wsMessage struct {
	Type     string `json:"type"`
	SVG      string `json:"svg,omitempty"`
	Name     string `json:"name,omitempty"`
	Repeat   string `json:"repeat,omitempty"`
	Position string `json:"position,omitempty"`
	Theme    string `json:"theme,omitempty"`
	Dark     bool   `json:"dark,omitempty"`
	Text     string `json:"text,omitempty"`
	Error    string `json:"error,omitempty"`

	// Seq numbers the page's input messages. View frames carry the last one
	// applied, so the page can drop echoes older than what it has typed since.
	Seq uint64 `json:"seq,omitempty"`

	View         *model.View         `json:"view,omitempty"`
	Notification *model.Notification `json:"notification,omitempty"`
}

type clipReply struct {
	text string
	err  error
}

// session is one browser tab. It is the controller's listener and its
// clipboard: writes are forwarded to the page, reads ask the page and wait
// for the reply.
type session struct {
	id     string
	conn   *websocket.Conn
	mu     sync.Mutex
	ctrl   *controller.Controller
	clip   chan clipReply
	ack    chan error
	seq    atomic.Uint64
	logger *zap.Logger
}

func newSession(conn *websocket.Conn, logger *zap.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:     id,
		conn:   conn,
		clip:   make(chan clipReply, 1),
		ack:    make(chan error, 1),
		logger: logger.With(zap.String("session", id)),
	}
}

func (s *session) send(msg wsMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}

func (s *session) ViewChanged(v model.View) {
	if err := s.send(wsMessage{Type: "view", View: &v, Seq: s.seq.Load()}); err != nil {
		s.logger.Debug("send view", zap.Error(err))
	}
}

func (s *session) Notify(n model.Notification) {
	if err := s.send(wsMessage{Type: "notify", Notification: &n}); err != nil {
		s.logger.Debug("send notification", zap.Error(err))
	}
}

// Write asks the page to put text on its clipboard and waits for the page to
// acknowledge it. The page owns the fallback copy path.
func (s *session) Write(ctx context.Context, text string) error {
	select {
	case <-s.ack:
	default:
	}
	if err := s.send(wsMessage{Type: "clipboard", Text: text}); err != nil {
		return err
	}
	select {
	case err := <-s.ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *session) Read(ctx context.Context) (string, error) {
	select {
	case <-s.clip:
	default:
	}
	if err := s.send(wsMessage{Type: "clipboard_request"}); err != nil {
		return "", err
	}
	select {
	case r := <-s.clip:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// deliver hands a clipboard reply from the page to a pending Read. Replies
// nobody waits for are dropped.
func (s *session) deliver(text, errText string) {
	r := clipReply{text: text}
	if errText != "" {
		r.err = errors.New(errText)
	}
	select {
	case s.clip <- r:
	default:
	}
}

// acknowledge completes a pending Write.
func (s *session) acknowledge(errText string) {
	var err error
	if errText != "" {
		err = errors.New(errText)
	}
	select {
	case s.ack <- err:
	default:
	}
}

// Hub tracks live sessions so theme changes reach every open tab.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*session)}
}

func (h *Hub) Add(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s.id] = s
	liveSessions.Set(float64(len(h.sessions)))
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
	liveSessions.Set(float64(len(h.sessions)))
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// BroadcastTheme applies pref to every session except the one it came from.
// An empty from reaches all sessions.
func (h *Hub) BroadcastTheme(from string, pref model.ThemePreference) {
	h.mu.RLock()
	targets := make([]*session, 0, len(h.sessions))
	for id, s := range h.sessions {
		if id != from && s.ctrl != nil {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range targets {
		s.ctrl.ApplyTheme(pref)
	}
}
