// Package ws: websocket-транспорт realtime-канала (/ws).
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/uniconnect/ama-service/internal/realtime"
	"github.com/uniconnect/ama-service/pkg/httputil"
)

const maxFrameBytes = 64 << 10

type Config struct {
	PingInterval time.Duration
	SendBuffer   int
}

type Server struct {
	upgrader  websocket.Upgrader
	hub       *realtime.Hub
	pingEvery time.Duration
	buffer    int
}

func NewServer(hub *realtime.Hub, cfg Config) *Server {
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 64
	}
	return &Server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: cfg.PingInterval,
		buffer:    cfg.SendBuffer,
	}
}

// HandleWS: GET /ws. Сессия выбирается событием join-session, не URL.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	log := httputil.L(r.Context())

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		log.Warn("ws upgrade failed", slog.Any("err", err))
		return
	}

	c := newWsConn(uuid.NewString(), conn, s.buffer)
	log = log.With(slog.String("conn_id", c.id))
	log.Info("ws connected", slog.String("remote", r.RemoteAddr))

	// контекст запроса после Hijack живёт до возврата из хендлера
	ctx, cancel := context.WithCancel(httputil.WithLogger(context.WithoutCancel(r.Context()), log))
	defer cancel()

	s.hub.Connect(c)
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writeLoop(ctx, c, log)
	}()

	s.readLoop(ctx, c)

	s.hub.Disconnect(c)
	if err := c.Close(); err != nil {
		log.Debug("ws close failed", slog.Any("err", err))
	}
	<-done
	log.Info("ws disconnected")
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	c.conn.SetReadLimit(maxFrameBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				httputil.L(ctx).Debug("ws read failed", slog.Any("err", err))
			}
			return
		}
		s.hub.Dispatch(ctx, c, data)
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn, log *slog.Logger) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			if err := c.write(msg); err != nil {
				log.Debug("ws write failed", slog.String("type", msg.Type), slog.Any("err", err))
				_ = c.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				_ = c.Close()
				return
			}
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}
