package net

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"MyDrawingPad/internal/state"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	MessageSnapshot = "snapshot"

	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

// Message is what the mirror sends to viewers.
type Message struct {
	Type     string         `json:"type"`
	Snapshot state.Snapshot `json:"snapshot"`
}

// Peer is one connected viewer.
type Peer struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub is the read-only live mirror of the working document. The author's
// UI publishes snapshots; viewers only receive. Publish is safe to call
// from the UI thread while viewers connect and disconnect.
type Hub struct {
	mu     sync.RWMutex
	peers  map[*Peer]bool
	latest []byte

	upgrader websocket.Upgrader
	log      *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		peers: make(map[*Peer]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logger,
	}
}

// Publish sends a snapshot to every viewer. Viewers that cannot keep up
// are dropped.
func (h *Hub) Publish(s state.Snapshot) {
	data, err := json.Marshal(Message{Type: MessageSnapshot, Snapshot: s})
	if err != nil {
		h.log.Printf("[MIRROR] Failed to encode snapshot: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			h.log.Printf("[MIRROR] Dropping slow viewer %s", p.conn.RemoteAddr())
			h.removeLocked(p)
		}
	}
}

// PeerCount returns the number of connected viewers.
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Handler routes /ws to the snapshot stream and /snapshot to the latest
// snapshot as plain JSON.
func (h *Hub) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.serveWS).Methods(http.MethodGet)
	r.HandleFunc("/snapshot", h.serveSnapshot).Methods(http.MethodGet)
	return r
}

func (h *Hub) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	data := h.latest
	h.mu.RUnlock()
	if data == nil {
		http.Error(w, "no snapshot yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Printf("[MIRROR] Upgrade failed: %v", err)
		return
	}
	p := &Peer{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.peers[p] = true
	if h.latest != nil {
		p.send <- h.latest
	}
	h.mu.Unlock()
	h.log.Printf("[MIRROR] Viewer connected: %s", conn.RemoteAddr())

	go h.writePump(p)
	h.readPump(p)
}

// readPump discards anything viewers send and notices when they leave.
func (h *Hub) readPump(p *Peer) {
	defer func() {
		h.mu.Lock()
		h.removeLocked(p)
		h.mu.Unlock()
		h.log.Printf("[MIRROR] Viewer disconnected: %s", p.conn.RemoteAddr())
	}()
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(p *Peer) {
	defer p.conn.Close()
	for data := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Printf("[MIRROR] Error sending to %s: %v", p.conn.RemoteAddr(), err)
			return
		}
	}
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) removeLocked(p *Peer) {
	if _, ok := h.peers[p]; ok {
		delete(h.peers, p)
		close(p.send)
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for p := range h.peers {
		h.removeLocked(p)
	}
}

// Listen serves the hub on addr in the background and returns the bound
// port, which differs from addr when it asks for port 0.
func Listen(addr string, h *Hub) (*http.Server, int, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, 0, err
	}
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			h.log.Printf("[MIRROR] Server stopped: %v", err)
		}
	}()
	h.log.Printf("[MIRROR] Listening on %s", ln.Addr())
	return srv, ln.Addr().(*net.TCPAddr).Port, nil
}
