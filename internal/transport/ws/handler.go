package ws

import (
	"context"
	"credable/internal/model"
	"credable/internal/service"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Handler serves the staged demo over WebSocket. Every connection is
// independent; nothing is shared between visitors.
type Handler struct {
	demoSvc  *service.DemoService
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler accepting the given origins
// ("*" or a comma separated list)
func NewHandler(demoSvc *service.DemoService, allowedOrigins string, logger *zap.Logger) *Handler {
	return &Handler{
		demoSvc: demoSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.Named("ws"),
	}
}

func originChecker(allowed string) func(r *http.Request) bool {
	if allowed == "" || allowed == "*" {
		return func(*http.Request) bool { return true }
	}
	origins := make(map[string]bool)
	for _, o := range strings.Split(allowed, ",") {
		origins[strings.TrimSpace(o)] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || origins[origin]
	}
}

// session is one connected demo page
type session struct {
	id     string
	conn   *websocket.Conn
	send   chan Message
	logger *zap.Logger

	ctx context.Context
	wg  sync.WaitGroup

	mu        sync.Mutex
	cancelRun context.CancelFunc
}

// DemoWS handles GET /v1/ws/demo. It blocks until the connection ends so
// runs never outlive their socket.
func (h *Handler) DemoWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	s := &session{
		id:   uuid.NewString(),
		conn: wsConn,
		send: make(chan Message, sendBuffer),
		ctx:  ctx,
	}
	s.logger = h.logger.With(zap.String("session", s.id))
	s.logger.Info("demo client connected")

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writePump(cancel)
	}()

	h.readPump(s)

	cancel()
	s.wg.Wait()
	<-writerDone
	wsConn.Close()
	s.logger.Info("demo client disconnected")
}

func (h *Handler) readPump(s *session) {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		switch msg.Type {
		case MsgRun:
			h.startRun(s, msg.Company)
		case MsgPreview:
			s.enqueue(MsgPreviewed, h.demoSvc.Preview(msg.Text))
		default:
			s.enqueue(MsgError, errorPayload{Error: "unknown message type: " + string(msg.Type)})
		}
	}
}

// startRun replaces any run in progress on this session
func (h *Handler) startRun(s *session, company string) {
	s.mu.Lock()
	if s.cancelRun != nil {
		s.cancelRun()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelRun = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		d, err := h.demoSvc.Run(ctx, company, func(line model.TraceLine) error {
			if !s.enqueue(MsgTraceLine, line) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			// superseded or disconnected
			return
		}
		s.enqueue(MsgDecision, d)
	}()
}

// enqueue hands a message to the writer, reporting false once the session
// is shutting down
func (s *session) enqueue(msgType MessageType, payload interface{}) bool {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		s.logger.Error("encode message", zap.String("type", string(msgType)), zap.Error(err))
		return false
	}
	select {
	case s.send <- msg:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *session) writePump(cancel context.CancelFunc) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cancel()
	}()

	for {
		select {
		case msg := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.logger.Debug("websocket write failed", zap.Error(err))
				// unblock the reader
				s.conn.Close()
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.conn.Close()
				return
			}

		case <-s.ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
