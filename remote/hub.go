// Package remote serves the rig's state to websocket observers and relays
// their commands to the firmware loop.
//
// Every snapshot the rig publishes is sent to all connected clients as a
// JSON text message. Clients send {"type": ..., "data": {...}} commands;
// get_ip is answered by the hub itself with the last snapshot plus the
// address the client reached the hub on.
package remote

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"axisrig/protocol"
)

// CommandSink accepts commands for the firmware loop without blocking
type CommandSink interface {
	Submit(cmd protocol.Command) error
}

// Config tunes the hub
type Config struct {
	AdvertiseIP  string  // reported by get_ip; defaults to the connection's local address
	CommandRate  float64 // commands per second per client
	CommandBurst int
	Backlog      int // queued outbound messages per client
	Logger       *slog.Logger
	Registry     *prometheus.Registry // nil creates a private registry
}

// Hub fans snapshots out to websocket clients
type Hub struct {
	sink     CommandSink
	cfg      Config
	log      *slog.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uuid.UUID]*client
	last    protocol.Snapshot
	hasLast bool
	closed  bool
}

// NewHub creates a hub relaying commands to sink
func NewHub(sink CommandSink, cfg Config) *Hub {
	if cfg.CommandRate <= 0 {
		cfg.CommandRate = 20
	}
	if cfg.CommandBurst <= 0 {
		cfg.CommandBurst = 10
	}
	if cfg.Backlog <= 0 {
		cfg.Backlog = 8
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	return &Hub{
		sink:     sink,
		cfg:      cfg,
		log:      cfg.Logger.With("component", "remote"),
		registry: cfg.Registry,
		metrics:  NewMetrics(cfg.Registry),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // the rig is reached from a LAN page
			},
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// Metrics returns the hub collectors
func (h *Hub) Metrics() *Metrics { return h.metrics }

// Handler serves /ws, /metrics and /healthz
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWS)
	mux.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", h.handleHealth)
	return mux
}

func (h *Hub) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	resp := struct {
		Status  string `json:"status"`
		Clients int    `json:"clients"`
		State   string `json:"globalStatus,omitempty"`
	}{Status: "ok", Clients: len(h.clients)}
	if h.hasLast {
		resp.State = h.last.GlobalStatus
	}
	h.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Publish implements core.Observer. The snapshot is cached for new clients
// and queued to every connected one; a client whose queue is full misses
// it.
func (h *Hub) Publish(s protocol.Snapshot) {
	msg := s.AppendJSON(nil)

	h.mu.Lock()
	h.last = s.Clone()
	h.hasLast = true
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	h.metrics.Broadcasts.Inc()
	for _, c := range clients {
		if !c.send(msg) {
			h.metrics.DroppedSnapshots.Inc()
		}
	}
}

// Last returns the most recent snapshot
func (h *Hub) Last() (protocol.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last.Clone(), h.hasLast
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS upgrades the request and runs the client until it disconnects
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := newClient(h, conn)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c.id] = c
	// Queued under the lock so no newer Publish can get ahead of it
	if h.hasLast {
		c.send(h.last.AppendJSON(nil))
	}
	h.mu.Unlock()

	h.metrics.Clients.Inc()
	h.log.Info("client connected", "client", c.id, "remote", conn.RemoteAddr().String())

	go c.writePump()
	c.readPump()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	if ok {
		h.metrics.Clients.Dec()
		h.log.Info("client disconnected", "client", c.id)
	}
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

// handleCommand processes one inbound message from c
func (h *Hub) handleCommand(c *client, data []byte) {
	if !c.limiter.Allow() {
		h.metrics.Commands.WithLabelValues(ResultRateLimited).Inc()
		h.log.Debug("command rate limited", "client", c.id)
		return
	}

	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		h.metrics.Commands.WithLabelValues(ResultMalformed).Inc()
		h.log.Debug("malformed command", "client", c.id, "err", err)
		return
	}

	if cmd.Type == protocol.CmdGetIP {
		h.metrics.Commands.WithLabelValues(ResultAnswered).Inc()
		snap, ok := h.Last()
		if !ok {
			snap.GlobalStatus = protocol.StatusStopped
		}
		snap.IP = h.advertiseIP(c)
		c.send(snap.AppendJSON(nil))
		return
	}

	if err := h.sink.Submit(cmd); err != nil {
		h.metrics.Commands.WithLabelValues(ResultRejected).Inc()
		h.log.Warn("command not queued", "client", c.id, "type", cmd.Type, "err", err)
		return
	}
	h.metrics.Commands.WithLabelValues(ResultQueued).Inc()
}

func (h *Hub) advertiseIP(c *client) string {
	if h.cfg.AdvertiseIP != "" {
		return h.cfg.AdvertiseIP
	}
	addr := c.conn.LocalAddr().String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
