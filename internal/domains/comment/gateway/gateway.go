package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/domains/comment/model"
	"bookcatalog-backend/internal/domains/comment/service"
	"bookcatalog-backend/internal/shared/apperr"
)

// Options - tham số connection của namespace "comments"
type Options struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	SendBuffer     int
	AllowedOrigins []string // rỗng = chấp nhận mọi origin
}

func (o Options) pingPeriod() time.Duration {
	return o.PongWait * 9 / 10
}

func (o Options) withDefaults() Options {
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = 8192
	}
	if o.SendBuffer <= 0 {
		o.SendBuffer = 64
	}
	return o
}

// Gateway upgrade GET /comments và điều phối event tới CommentService + Hub
type Gateway struct {
	hub      *Hub
	service  service.ServiceInterface
	opts     Options
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*Client]struct{}
	closed  bool
	wg      sync.WaitGroup
}

func NewGateway(hub *Hub, svc service.ServiceInterface, opts Options) *Gateway {
	opts = opts.withDefaults()
	g := &Gateway{
		hub:     hub,
		service: svc,
		opts:    opts,
		clients: make(map[*Client]struct{}),
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}
	return g
}

// Handle - GET /comments
func (g *Gateway) Handle(c *gin.Context) {
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrader đã tự trả HTTP error
		log.Debug().Err(err).Msg("[WS] Upgrade failed")
		return
	}

	client := newClient(conn, g)
	if !g.register(client) {
		client.Close()
		_ = conn.Close()
		return
	}

	log.Info().Str("client_id", client.id.String()).Str("ip", c.ClientIP()).Msg("[WS] Connection opened")

	go func() {
		defer g.wg.Done()
		client.writePump()
	}()
	go func() {
		defer g.wg.Done()
		client.readPump()
		g.unregister(client)
		log.Info().Str("client_id", client.id.String()).Msg("[WS] Connection closed")
	}()
}

func (g *Gateway) register(c *Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return false
	}
	g.clients[c] = struct{}{}
	g.wg.Add(2)
	return true
}

func (g *Gateway) unregister(c *Client) {
	g.mu.Lock()
	delete(g.clients, c)
	g.mu.Unlock()
}

// Close ngắt mọi connection và chờ các pump dừng
func (g *Gateway) Close() {
	g.mu.Lock()
	g.closed = true
	clients := make([]*Client, 0, len(g.clients))
	for c := range g.clients {
		clients = append(clients, c)
	}
	g.mu.Unlock()

	for _, c := range clients {
		c.Close()
	}
	g.wg.Wait()
}

// Connections - số connection đang mở
func (g *Gateway) Connections() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	if len(g.opts.AllowedOrigins) == 0 {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.opts.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// ========================================
// EVENTS
// ========================================

func (g *Gateway) dispatch(ctx context.Context, c *Client, in Inbound) {
	var (
		reply interface{}
		err   error
	)

	switch in.Event {
	case EventSubscribe:
		reply, err = g.subscribe(c, in.Data, true)
	case EventUnsubscribe:
		reply, err = g.subscribe(c, in.Data, false)
	case EventAddComment:
		reply, err = g.addComment(ctx, in.Data)
	case EventGetAllComments:
		reply, err = g.getAllComments(ctx, in.Data)
	default:
		err = apperr.BadRequest("unknown event: " + in.Event)
	}

	if err != nil {
		log.Debug().Err(err).Str("client_id", c.id.String()).Str("event", in.Event).Msg("[WS] Event failed")
		c.Send(newException(in, err))
		return
	}

	c.Send(Message{Event: in.Event, Data: reply, ID: in.ID})
}

func (g *Gateway) subscribe(c *Client, data json.RawMessage, join bool) (interface{}, error) {
	var ref model.BookRef
	if err := decode(data, &ref); err != nil {
		return nil, err
	}
	if err := apperr.Validation(ref.Validate()); err != nil {
		return nil, err
	}

	bookID := ref.ParsedBookID()
	if join {
		g.hub.Subscribe(c, bookID)
	} else {
		g.hub.Unsubscribe(c, bookID)
	}

	log.Debug().
		Str("client_id", c.id.String()).
		Str("book_id", bookID.String()).
		Bool("subscribed", join).
		Msg("[WS] Subscription changed")

	return SubscriptionAck{BookID: ref.BookID, Subscribed: join}, nil
}

// addComment - chỉ broadcast sau khi persist thành công
func (g *Gateway) addComment(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var req model.CreateCommentRequest
	if err := decode(data, &req); err != nil {
		return nil, err
	}

	created, err := g.service.AddComment(ctx, req)
	if err != nil {
		return nil, err
	}

	delivered := g.hub.Broadcast(created.BookID, Message{Event: EventNewComment, Data: created})
	log.Debug().Str("book_id", created.BookID.String()).Int("delivered", delivered).Msg("[WS] Comment broadcast")

	return created, nil
}

func (g *Gateway) getAllComments(ctx context.Context, data json.RawMessage) (interface{}, error) {
	var ref model.BookRef
	if err := decode(data, &ref); err != nil {
		return nil, err
	}
	return g.service.GetAllComments(ctx, ref)
}

func decode(data json.RawMessage, dst interface{}) error {
	if len(data) == 0 || string(data) == "null" {
		return apperr.Field("data", "data is required")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperr.Field("data", err.Error())
	}
	return nil
}
