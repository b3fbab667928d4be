package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/yoockh/jobportal/internal/services"
	"github.com/yoockh/jobportal/internal/utils"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second
)

// Subscriber opens the notification channel of one jobseeker.
type Subscriber interface {
	Subscribe(ctx context.Context, jobSeekerID string) *redis.PubSub
}

type NotificationHandler struct {
	seekers  services.JobSeekerService
	sub      Subscriber
	upgrader websocket.Upgrader
}

func NewNotificationHandler(seekers services.JobSeekerService, sub Subscriber, checkOrigin func(*http.Request) bool) *NotificationHandler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &NotificationHandler{
		seekers:  seekers,
		sub:      sub,
		upgrader: websocket.Upgrader{CheckOrigin: checkOrigin},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) write(kind int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteMessage(kind, b)
}

func (w *wsConn) writeJSON(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.c.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.c.WriteJSON(v)
}

type wsError struct {
	Type string `json:"type"`
	APIError
}

// Stream forwards application status events of the caller to a WebSocket.
// Client messages are ignored.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	seeker, err := h.seekers.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	pubsub := h.sub.Subscribe(ctx, seeker.ID.Hex())
	defer pubsub.Close()
	// wait for the subscribe confirmation so "ready" means events will arrive
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = wc.writeJSON(wsError{Type: "error", APIError: APIError{Code: utils.CodeUnavailable, Message: "notifications unavailable"}})
		return
	}

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	_ = wc.write(websocket.TextMessage, []byte(`{"type":"ready"}`))

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	msgs := pubsub.Channel()
	for {
		select {
		case <-readDone:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			if err := wc.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case m, ok := <-msgs:
			if !ok {
				return
			}
			// payload is already JSON
			if err := wc.write(websocket.TextMessage, []byte(m.Payload)); err != nil {
				return
			}
		}
	}
}
