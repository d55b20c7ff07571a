package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/draglist/pkg/draglist"
	"github.com/vango-dev/draglist/pkg/middleware"
	"github.com/vango-dev/draglist/pkg/protocol"
	"github.com/vango-dev/draglist/pkg/render"
	"github.com/vango-dev/draglist/pkg/reorder"
	"github.com/vango-dev/draglist/pkg/vdom"
)

// Session is one WebSocket connection with its own mounted list.
//
// The list, its drag state and the handler registry are touched only by the
// read loop. Writes to the connection are serialized by mu.
type Session struct {
	ID        string
	CreatedAt time.Time

	conn   *websocket.Conn
	server *Server
	config *Config

	collection *reorder.List[string]
	list       *draglist.List[string]
	renderer   *render.Renderer
	handler    middleware.Handler
	seq        uint64

	mu     sync.Mutex
	closed atomic.Bool
	done   chan struct{}

	// ctx scopes event handling, including snapshot saves. Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	eventCount atomic.Uint64
	patchCount atomic.Uint64

	logger *slog.Logger
}

// newSession mounts a list over the current committed order.
func newSession(conn *websocket.Conn, srv *Server) (*Session, error) {
	collection, err := reorder.NewList(srv.order.Items()...)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := srv.logger.With("session_id", id)
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		conn:       conn,
		server:     srv,
		config:     srv.config,
		collection: collection,
		renderer:   render.NewRenderer(render.RendererConfig{}),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
	s.list = draglist.New[string](collection,
		draglist.WithID[string](srv.order.ListID()),
		draglist.WithMetrics[string](srv.metrics),
		draglist.WithLogger[string](logger),
	)
	s.handler = middleware.Chain(s.process, srv.events...)
	return s, nil
}

// Start sends the initial render and starts the session loops.
func (s *Session) Start() {
	if err := s.sendReplace(); err != nil {
		s.logger.Error("initial render failed", "error", err)
		s.Close()
		return
	}
	go s.ReadLoop()
	go s.WriteLoop()
}

// handleEvent dispatches one event frame and answers it with exactly one
// frame.
func (s *Session) handleEvent(ctx context.Context, frame *protocol.Frame) {
	s.eventCount.Add(1)
	ev := &middleware.Event{
		SessionID: s.ID,
		ListID:    s.list.ID(),
		HID:       frame.HID,
		Name:      frame.EventType().DOMName(),
	}

	err := s.handler(ctx, ev)
	if err == nil || errors.Is(err, errReplySent) {
		return
	}

	var herr *HandlerError
	switch {
	case errors.Is(err, ErrHandlerNotFound):
		s.sendError(protocol.ErrCodeHandlerNotFound, fmt.Sprintf("Handler not found: %s", render.HandlerKey(ev.HID, ev.Name)))
	case errors.As(err, &herr) && herr.Panic != nil:
		s.sendError(protocol.ErrCodeHandlerPanic, "Internal error")
	default:
		s.sendError(protocol.ErrCodeServerError, "Internal error")
	}
}

// process is the innermost event handler. It runs the list handler and
// sends the patch or replace reply.
func (s *Session) process(ctx context.Context, ev *middleware.Event) error {
	if err := s.dispatch(ev.HID, ev.Name); err != nil {
		return err
	}

	if s.list.TakeReplace() {
		s.list.TakePatches()
		ev.Replaced = true
		if err := s.server.order.Commit(ctx, s.collection.Items()); err != nil {
			s.logger.Error("order snapshot failed", "error", err)
		}
		if err := s.sendReplace(); err != nil {
			return fmt.Errorf("%w: %w", errReplySent, err)
		}
		return nil
	}

	patches := s.list.TakePatches()
	ev.Patches = len(patches)
	if err := s.sendPatches(patches); err != nil {
		return fmt.Errorf("%w: %w", errReplySent, err)
	}
	return nil
}

// dispatch invokes the handler registered for hid and event with panic
// recovery.
func (s *Session) dispatch(hid, event string) (err error) {
	handler, ok := s.renderer.Handler(hid, event)
	if !ok {
		return ErrHandlerNotFound
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"panic", r,
				"hid", hid,
				"event", event,
				"stack", string(debug.Stack()))
			err = &HandlerError{SessionID: s.ID, HID: hid, Event: event, Panic: r}
		}
	}()

	if _, err := vdom.Invoke(handler); err != nil {
		return &HandlerError{SessionID: s.ID, HID: hid, Event: event, Err: err}
	}
	return nil
}

// sendReplace re-renders the list with a fresh handler registry and sends
// it as a replace frame.
func (s *Session) sendReplace() error {
	s.renderer.Reset()
	html, err := s.renderer.RenderToString(s.list.Render())
	if err != nil {
		return err
	}
	s.seq++
	if err := s.write(protocol.NewReplace(s.seq, s.list.ID(), html)); err != nil {
		return err
	}
	s.server.metrics.RecordReplace()
	return nil
}

// sendPatches sends a patch frame, which may be empty.
func (s *Session) sendPatches(patches []protocol.Patch) error {
	s.seq++
	if err := s.write(protocol.NewPatch(s.seq, patches)); err != nil {
		return err
	}
	s.patchCount.Add(uint64(len(patches)))
	s.server.metrics.RecordPatches(len(patches))
	return nil
}

// sendError sends an error frame to the client.
func (s *Session) sendError(code protocol.ErrorCode, message string) {
	if err := s.write(protocol.NewError(code, message)); err != nil {
		s.logger.Warn("error frame not sent", "code", code, "error", err)
	}
}

// write encodes and sends a frame.
func (s *Session) write(frame *protocol.Frame) error {
	data, err := frame.Encode()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.server.metrics.RecordWebSocketError("write")
		return err
	}
	return nil
}

// sendPing sends a heartbeat ping to the client.
func (s *Session) sendPing() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}

	err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
	if err != nil {
		s.logger.Error("ping error", "error", err)
		return err
	}
	return nil
}

// Close gracefully closes the session.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}

	close(s.done)
	s.cancel()

	s.mu.Lock()
	if s.conn != nil {
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
	}
	s.mu.Unlock()

	s.logger.Info("session closed",
		"events", s.eventCount.Load(),
		"patches", s.patchCount.Load())
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Context returns the session context. It is cancelled when the session
// closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
