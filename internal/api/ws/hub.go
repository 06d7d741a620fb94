package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/listmodel"
	"github.com/GriffinCanCode/AgentOS/shell/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/AgentOS/shell/internal/shared/id"
	"github.com/GriffinCanCode/AgentOS/shell/internal/shell"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// DefaultSendBuffer is the per-client frame queue length.
	DefaultSendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub streams view-model changes to websocket clients.
type Hub struct {
	shell      *shell.Shell
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	sendBuffer int

	mu      sync.Mutex
	clients map[string]*client
}

// NewHub creates a hub. A non-positive sendBuffer uses DefaultSendBuffer.
func NewHub(s *shell.Shell, metrics *monitoring.Metrics, logger *zap.Logger, sendBuffer int) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Hub{
		shell:      s,
		metrics:    metrics,
		logger:     logger.Named("ws"),
		sendBuffer: sendBuffer,
		clients:    make(map[string]*client),
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// client is one connection. Frames are produced on the shell loop and
// written by the client's own goroutine; a client whose queue is full is
// disconnected rather than allowed to stall the loop.
type client struct {
	id   string
	conn *websocket.Conn
	send chan Frame
	seq  uint64

	once   sync.Once
	closed chan struct{}
}

func (c *client) close() {
	c.once.Do(func() { close(c.closed) })
}

// enqueue runs on the shell loop.
func (h *Hub) enqueue(c *client, f Frame) {
	select {
	case <-c.closed:
		return
	default:
	}

	c.seq++
	f.Seq = c.seq
	select {
	case c.send <- f:
	default:
		h.logger.Warn("Dropping slow client", zap.String("client_id", c.id))
		h.metrics.RecordWSDrop()
		c.close()
	}
}

// models parses the comma separated models query parameter.
func models(query string) []string {
	if query == "" {
		return []string{shell.ModelLauncher, shell.ModelCategories}
	}
	var out []string
	for _, m := range strings.Split(query, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// HandleConnection upgrades the request and streams the models named by
// the models query parameter (default: all).
func (h *Hub) HandleConnection(c *gin.Context) {
	names := models(c.Query("models"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	cl := &client{
		id:     id.NewClientID().String(),
		conn:   conn,
		send:   make(chan Frame, h.sendBuffer),
		closed: make(chan struct{}),
	}
	h.register(cl)
	defer h.unregister(cl)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writePump(ctx, cl)
	}()

	var subs []*listmodel.Subscription
	defer func() {
		for _, sub := range subs {
			h.shell.Unobserve(sub)
		}
	}()
	for _, name := range names {
		sub, err := h.shell.Observe(ctx, name, func(m listmodel.Model) listmodel.Observer {
			o := &observer{name: name, model: m, send: func(f Frame) { h.enqueue(cl, f) }}
			h.enqueue(cl, o.snapshot())
			return o
		})
		if err != nil {
			h.logger.Debug("Observe failed", zap.String("client_id", cl.id), zap.String("model", name), zap.Error(err))
			h.shell.Do(ctx, func() error {
				h.enqueue(cl, Frame{Type: FrameError, Model: name, Error: err.Error()})
				return nil
			})
			continue
		}
		subs = append(subs, sub)
	}

	h.readPump(cl)
	cl.close()
	cancel()
	<-writerDone
}

// readPump consumes control frames until the peer goes away.
func (h *Hub) readPump(cl *client) {
	cl.conn.SetReadLimit(4096)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("WebSocket read error", zap.String("client_id", cl.id), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(ctx context.Context, cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cl.closed:
			cl.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "client too slow"),
				time.Now().Add(writeWait))
			cl.conn.Close()
			return
		case f := <-cl.send:
			data, err := sonic.Marshal(f)
			if err != nil {
				h.logger.Error("Frame encoding failed", zap.String("model", f.Model), zap.Error(err))
				continue
			}
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				cl.close()
				cl.conn.Close()
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				cl.close()
				cl.conn.Close()
				return
			}
		}
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl.id] = cl
	n := len(h.clients)
	h.mu.Unlock()

	h.metrics.IncWSClients()
	h.logger.Info("Client connected", zap.String("client_id", cl.id), zap.Int("clients", n))
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl.id)
	n := len(h.clients)
	h.mu.Unlock()

	h.metrics.DecWSClients()
	fields := []zap.Field{zap.String("client_id", cl.id), zap.Int("clients", n)}
	if since, err := id.Timestamp(cl.id); err == nil {
		fields = append(fields, zap.Duration("connected_for", time.Since(since)))
	}
	h.logger.Info("Client disconnected", fields...)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cl := range h.clients {
		cl.close()
	}
}
