package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/uniconnect/ama-service/internal/realtime"
)

const writeWait = 5 * time.Second

// wsConn: realtime.Conn поверх gorilla-соединения.
// Пишет только writeLoop; Send лишь кладёт в очередь.
type wsConn struct {
	id     string
	conn   *websocket.Conn
	send   chan realtime.Message
	closed chan struct{}
	once   sync.Once
}

func newWsConn(id string, c *websocket.Conn, buffer int) *wsConn {
	return &wsConn{
		id:     id,
		conn:   c,
		send:   make(chan realtime.Message, buffer),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) ID() string { return c.id }

// Send не блокируется: при полной очереди сообщение теряется для этого клиента.
func (c *wsConn) Send(msg realtime.Message) bool {
	select {
	case <-c.closed:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *wsConn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.closed)
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) write(msg realtime.Message) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}
