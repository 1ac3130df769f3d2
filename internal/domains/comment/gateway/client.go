package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/shared/apperr"
)

// Client là một connection websocket đã upgrade.
// send không bao giờ bị close; done báo hiệu client đã dừng.
type Client struct {
	id      uuid.UUID
	conn    *websocket.Conn
	gateway *Gateway
	send    chan Message

	ctx    context.Context
	cancel context.CancelFunc

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn, g *Gateway) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		id:      uuid.New(),
		conn:    conn,
		gateway: g,
		send:    make(chan Message, g.opts.SendBuffer),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Send không block: buffer đầy nghĩa là client quá chậm và bị ngắt
func (c *Client) Send(msg Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	default:
		log.Warn().Str("client_id", c.id.String()).Str("event", msg.Event).Msg("[WS] Dropping slow client")
		c.Close()
		return false
	}
}

// Close idempotent, an toàn khi gọi từ nhiều goroutine
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.cancel()
	})
}

// readPump xử lý event tuần tự theo thứ tự nhận trên connection
func (c *Client) readPump() {
	defer func() {
		c.gateway.hub.Remove(c)
		c.Close()
		_ = c.conn.Close()
	}()

	opts := c.gateway.opts
	c.conn.SetReadLimit(opts.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Debug().Err(err).Str("client_id", c.id.String()).Msg("[WS] Read failed")
			}
			return
		}

		var in Inbound
		if err := json.Unmarshal(raw, &in); err != nil {
			c.Send(newException(Inbound{}, errMalformedFrame))
			continue
		}

		c.gateway.dispatch(c.ctx, c, in)

		select {
		case <-c.done:
			return
		default:
		}
	}
}

// writePump là writer duy nhất của conn (gorilla không cho ghi đồng thời)
func (c *Client) writePump() {
	opts := c.gateway.opts
	ticker := time.NewTicker(opts.pingPeriod())
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(opts.WriteWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Debug().Err(err).Str("client_id", c.id.String()).Msg("[WS] Write failed")
				c.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}

		case <-c.done:
			c.flush()
			_ = c.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(opts.WriteWait),
			)
			return
		}
	}
}

// flush ghi nốt các message đã nằm trong buffer trước khi đóng
func (c *Client) flush() {
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.gateway.opts.WriteWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

var errMalformedFrame = apperr.BadRequest("malformed frame")
