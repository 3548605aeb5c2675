package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/emojidecoded/decoder/interpret"
)

const (
	wsReadWait      = 30 * time.Second
	wsWriteWait     = 10 * time.Second
	wsMaxMessageLen = 1 << 16
)

// streamFrame is one websocket message on the streaming endpoint. The
// client sees zero or more "delta" frames of raw model text, then exactly
// one terminal frame: "result" with the fully validated interpretation, or
// "error". Deltas are display-only; a client must never assemble its own
// result from them.
type streamFrame struct {
	Type   string            `json:"type"`
	Text   string            `json:"text,omitempty"`
	Result *interpret.Result `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// handleInterpretStream serves one interpretation per websocket
// connection: the client sends a single request frame and the server
// streams back model deltas followed by the terminal frame.
func (s *server) handleInterpretStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsMaxMessageLen)
	_ = conn.SetReadDeadline(time.Now().Add(wsReadWait))

	var body interpretRequest
	if err := conn.ReadJSON(&body); err != nil {
		s.writeFrame(conn, streamFrame{Type: "error", Error: "invalid request frame"})
		return
	}
	req, err := s.parse(body)
	if err != nil {
		s.writeFrame(conn, streamFrame{Type: "error", Error: err.Error()})
		return
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// Deltas arrive synchronously on this goroutine, so writes need no
	// extra locking.
	result, err := s.interpreter().InterpretStream(ctx, req, func(delta string) {
		s.writeFrame(conn, streamFrame{Type: "delta", Text: delta})
	})
	if err != nil {
		s.logger.Error("stream interpretation failed",
			"error", err,
		)
		s.writeFrame(conn, streamFrame{Type: "error", Error: "interpretation failed"})
		return
	}

	s.writeFrame(conn, streamFrame{Type: "result", Result: result})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(wsWriteWait))
}

func (s *server) writeFrame(conn *websocket.Conn, f streamFrame) {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(f); err != nil {
		s.logger.Warn("websocket write failed", "error", err)
	}
}
