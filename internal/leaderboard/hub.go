package leaderboard

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/neon-snake/internal/storage"
)

const writeWait = 5 * time.Second

// subscriber is one live feed connection.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// WriteMessage sends a message guarded by the subscriber's mutex and write deadline.
func (s *subscriber) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(messageType, data)
}

// hub fans new entries out to every live feed subscriber.
type hub struct {
	upgrader websocket.Upgrader
	log      *log.Logger

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func newHub(logger *log.Logger) *hub {
	return &hub{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		log:      logger,
		subs:     make(map[*subscriber]struct{}),
	}
}

// serve upgrades the request and keeps the subscriber until it disconnects.
func (h *hub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("live feed upgrade failed", "err", err)
		return
	}
	sub := &subscriber{conn: conn}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	count := len(h.subs)
	h.mu.Unlock()
	h.log.Debug("live subscriber joined", "remote", r.RemoteAddr, "subscribers", count)

	// The feed is one-way; reading only detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(sub)
}

func (h *hub) drop(sub *subscriber) {
	h.mu.Lock()
	_, ok := h.subs[sub]
	delete(h.subs, sub)
	h.mu.Unlock()
	if ok {
		sub.conn.Close()
	}
}

// broadcast sends entry to every subscriber, dropping the ones that fail.
func (h *hub) broadcast(entry storage.ScoreEntry) {
	data, err := json.Marshal(entry)
	if err != nil {
		h.log.Error("cannot encode live entry", "err", err)
		return
	}

	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		if err := s.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("dropping live subscriber", "err", err)
			h.drop(s)
		}
	}
}

// closeAll disconnects every subscriber.
func (h *hub) closeAll() {
	h.mu.Lock()
	subs := h.subs
	h.subs = make(map[*subscriber]struct{})
	h.mu.Unlock()

	for s := range subs {
		s.mu.Lock()
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		s.mu.Unlock()
		s.conn.Close()
	}
}

// subscribers returns the live connection count.
func (h *hub) subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
