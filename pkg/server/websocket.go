package server

import (
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/draglist/pkg/protocol"
)

// ReadLoop continuously reads frames from the WebSocket connection and
// handles them in order. It blocks until the connection is closed or an
// error occurs.
func (s *Session) ReadLoop() {
	defer func() {
		s.list.Unmount()
		s.Close()
	}()

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
				s.server.metrics.RecordWebSocketError("read")
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			code := protocol.ErrCodeInvalidFrame
			if errors.Is(err, protocol.ErrUnknownEvent) {
				code = protocol.ErrCodeInvalidEvent
			}
			s.sendError(code, err.Error())
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEvent(s.ctx, frame)

		case protocol.FramePing:
			if err := s.write(&protocol.Frame{Type: protocol.FramePong}); err != nil {
				return
			}

		case protocol.FramePong:
			// Client-initiated keepalive reply; nothing to do.

		default:
			s.sendError(protocol.ErrCodeInvalidFrame, "unexpected frame type: "+string(frame.Type))
		}
	}
}

// WriteLoop sends periodic heartbeats until the session is closed.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				s.Close()
				return
			}

		case <-s.done:
			return
		}
	}
}
