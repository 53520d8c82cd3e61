package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"

	"lfg-site/internal/models"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub streams chat events to the browsers watching a session. With a Redis
// client, events published on any replica reach subscribers on all of them.
type Hub struct {
	mu          sync.RWMutex
	connections map[string][]*client
	redisClient *redis.Client
	cancelFuncs map[string]context.CancelFunc
}

func NewHub(redisClient *redis.Client) *Hub {
	return &Hub{
		connections: make(map[string][]*client),
		redisClient: redisClient,
		cancelFuncs: make(map[string]context.CancelFunc),
	}
}

func channelName(sessionID string) string {
	return "chat_events:" + sessionID
}

// Serve upgrades the request and subscribes it to sessionID. The caller has
// already authorized the session. hello, if not nil, is sent first.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, sessionID string, hello interface{}) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "session", sessionID, "error", err)
		return
	}

	c := &client{conn: conn}
	if hello != nil {
		if data, err := json.Marshal(hello); err == nil {
			c.write(data)
		}
	}
	h.registerConnection(sessionID, c)

	// Keep connection alive and handle disconnect
	go func() {
		defer h.unregisterConnection(sessionID, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}

func (h *Hub) registerConnection(sessionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[sessionID] = append(h.connections[sessionID], c)

	// Start pub/sub subscription if this is the first connection for this session
	if h.redisClient != nil && len(h.connections[sessionID]) == 1 {
		ctx, cancel := context.WithCancel(context.Background())
		h.cancelFuncs[sessionID] = cancel
		go h.subscribeToPubSub(ctx, sessionID)
	}

	slog.Debug("websocket connected", "session", sessionID, "total", len(h.connections[sessionID]))
}

func (h *Hub) unregisterConnection(sessionID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.conn.Close()

	conns := h.connections[sessionID]
	for i, existing := range conns {
		if existing == c {
			h.connections[sessionID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}

	// If no more connections, cancel pub/sub
	if len(h.connections[sessionID]) == 0 {
		delete(h.connections, sessionID)
		if cancel, ok := h.cancelFuncs[sessionID]; ok {
			cancel()
			delete(h.cancelFuncs, sessionID)
		}
	}

	slog.Debug("websocket disconnected", "session", sessionID)
}

func (h *Hub) subscribeToPubSub(ctx context.Context, sessionID string) {
	pubsub := h.redisClient.Subscribe(ctx, channelName(sessionID))
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.broadcast(sessionID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) broadcast(sessionID string, data []byte) {
	h.mu.RLock()
	conns := append([]*client(nil), h.connections[sessionID]...)
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.write(data); err != nil {
			slog.Debug("websocket write failed", "session", sessionID, "error", err)
		}
	}
}

// Publish delivers ev to every subscriber of its session. It has the shape
// of a chat.Observer.
func (h *Hub) Publish(ev models.ChatEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	if h.redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err := h.redisClient.Publish(ctx, channelName(ev.SessionID), data).Err()
		if err == nil {
			return
		}
		slog.Warn("chat event publish failed, delivering locally", "session", ev.SessionID, "error", err)
	}
	h.broadcast(ev.SessionID, data)
}

// CloseSession disconnects every subscriber of sessionID.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.RLock()
	conns := append([]*client(nil), h.connections[sessionID]...)
	h.mu.RUnlock()

	for _, c := range conns {
		c.mu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
			time.Now().Add(writeWait))
		c.mu.Unlock()
		c.conn.Close()
	}
}

// Subscribers reports how many connections watch sessionID.
func (h *Hub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[sessionID])
}
