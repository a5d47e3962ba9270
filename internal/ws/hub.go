// Package ws streams frames and diagnostics to browser clients and accepts
// pause/resume/stop control requests for a live scene.
package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-arcanim/internal/clock"
	diag "github.com/coreman2200/funtimes-arcanim/internal/diagnostics"
	"github.com/coreman2200/funtimes-arcanim/internal/scene"
)

const (
	writeWait = 200 * time.Millisecond
	// queued messages per client; frames arriving at a full queue are dropped
	sendQueue = 16
)

// ErrControlBusy is returned when the control queue is full.
var ErrControlBusy = errors.New("ws: control queue full")

// client owns one connection's writes. Messages are queued by the hub and
// written by the client's own goroutine, so a slow peer never blocks a tick.
type client struct {
	conn *websocket.Conn
	out  chan []byte
	done chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, out: make(chan []byte, sendQueue), done: make(chan struct{})}
}

// offer queues b without blocking and reports whether it was queued.
func (c *client) offer(b []byte) bool {
	select {
	case c.out <- b:
		return true
	default:
		return false
	}
}

func (c *client) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case b := <-c.out:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
				log.Debug().Err(err).Msg("ws write")
				c.conn.Close()
				return
			}
		}
	}
}

// Hub is a scene.Sink that fans frames out to websocket clients.
type Hub struct {
	mu       sync.RWMutex
	scene    string
	gatherer prometheus.Gatherer

	last        scene.Frame
	startTime   time.Time
	clients     map[*client]bool
	diagClients map[*client]bool

	ctrl chan clock.Command
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// NewHub serves frames of sceneName. gatherer may be nil, in which case
// /metrics is not routed.
func NewHub(sceneName string, gatherer prometheus.Gatherer) *Hub {
	return &Hub{
		scene:       sceneName,
		gatherer:    gatherer,
		startTime:   time.Now(),
		clients:     map[*client]bool{},
		diagClients: map[*client]bool{},
		ctrl:        make(chan clock.Command, 8),
	}
}

// Control delivers accepted commands; hand it to scene.Runner.Live.
func (h *Hub) Control() <-chan clock.Command { return h.ctrl }

// Write records f as the latest frame and queues it for every client. A
// client whose queue is full misses the frame.
func (h *Hub) Write(f scene.Frame) error {
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.last = f
	targets := snapshot(h.clients)
	h.mu.Unlock()
	for _, c := range targets {
		if !c.offer(b) {
			log.Debug().Uint64("frame", f.Index).Msg("client queue full; frame dropped")
		}
	}
	return nil
}

// Fault reports a run failure on the diagnostics stream.
func (h *Hub) Fault(err error) {
	if err == nil {
		return
	}
	h.PushDiag(diag.FromError("run", err))
}

func (h *Hub) PushDiag(d diag.Diagnostic) {
	b, err := json.Marshal(d)
	if err != nil {
		return
	}
	log.Info().Str("code", d.Code).Str("severity", string(d.Severity)).Msg(d.Summary)
	h.mu.RLock()
	targets := snapshot(h.diagClients)
	h.mu.RUnlock()
	for _, c := range targets {
		c.offer(b)
	}
}

func snapshot(set map[*client]bool) []*client {
	out := make([]*client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// Send queues a control command without blocking.
func (h *Hub) Send(cmd clock.Command) error {
	select {
	case h.ctrl <- cmd:
		return nil
	default:
		return ErrControlBusy
	}
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := newClient(conn)
	h.mu.Lock()
	h.clients[c] = true
	if h.last.Scene != "" {
		if b, err := json.Marshal(h.last); err == nil {
			c.offer(b)
		}
	}
	h.mu.Unlock()
	go c.writeLoop()
	go h.drain(c, h.clients)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := newClient(conn)
	h.mu.Lock()
	h.diagClients[c] = true
	h.mu.Unlock()
	go c.writeLoop()
	go h.drain(c, h.diagClients)
}

// drain reads until the peer goes away, then forgets c.
func (h *Hub) drain(c *client, set map[*client]bool) {
	defer func() {
		h.mu.Lock()
		delete(set, c)
		h.mu.Unlock()
		close(c.done)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

type controlMsg struct {
	Command string `json:"command"`
}

type controlAck struct {
	OK      bool   `json:"ok"`
	Command string `json:"command,omitempty"`
	Error   string `json:"error,omitempty"`
}

// HandleControlWS accepts {"command":"pause"} messages and answers each
// with an ack.
func (h *Hub) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg controlMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			h.PushDiag(diag.Diagnostic{Severity: diag.Warn, Code: "CONTROL.MALFORMED", Summary: "Control message is not JSON", Detail: err.Error()})
			_ = conn.WriteJSON(controlAck{Error: err.Error()})
			continue
		}
		ack := h.apply(msg.Command)
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ack); err != nil {
			return
		}
	}
}

// HandleControl is the REST form: POST /control/{command}.
func (h *Hub) HandleControl(w http.ResponseWriter, r *http.Request) {
	ack := h.apply(chi.URLParam(r, "command"))
	w.Header().Set("Content-Type", "application/json")
	switch {
	case ack.OK:
		w.WriteHeader(http.StatusAccepted)
	case ack.Error == ErrControlBusy.Error():
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
	_ = json.NewEncoder(w).Encode(ack)
}

func (h *Hub) apply(name string) controlAck {
	cmd, err := clock.ParseCommand(name)
	if err != nil {
		h.PushDiag(diag.Diagnostic{
			Severity: diag.Warn, Code: "CONTROL.UNKNOWN", Summary: "Unknown control command",
			Evidence: map[string]any{"command": name},
		})
		return controlAck{Command: name, Error: err.Error()}
	}
	if err := h.Send(cmd); err != nil {
		h.PushDiag(diag.Diagnostic{Severity: diag.Warn, Code: "CONTROL.BUSY", Summary: "Control queue full", Evidence: map[string]any{"command": name}})
		return controlAck{Command: name, Error: err.Error()}
	}
	h.PushDiag(diag.Diagnostic{Severity: diag.Info, Code: "CONTROL.ACCEPTED", Summary: "Command queued", Detail: string(cmd)})
	return controlAck{OK: true, Command: string(cmd)}
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	resp := map[string]any{
		"scene":    h.scene,
		"frame_id": h.last.Index,
		"t":        h.last.T,
		"uptime_s": time.Since(h.startTime).Seconds(),
		"clients":  len(h.clients),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Router mounts every endpoint on a chi mux.
func (h *Hub) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(withCORS)
	r.Get("/ws", h.HandleFramesWS)
	r.Get("/diag", h.HandleDiagWS)
	r.Get("/control", h.HandleControlWS)
	r.Post("/control/{command}", h.HandleControl)
	r.Get("/health", h.HandleHealth)
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
