package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"quizzz-service/internal/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// handlePlayWS streams progress snapshots for one play session over a
// websocket. Answers still go through the REST endpoint; the socket is
// outbound-only and closes when the client disconnects.
func (a *API) handlePlayWS(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	updates, cancel, err := a.plays.Subscribe(r.Context(), sessionID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		cancel()
		a.logger.Info("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	defer cancel()

	// Reader goroutine: the client sends nothing meaningful, but reading is
	// how we learn the peer went away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case progress, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[app.Progress]{Type: "progress", Payload: progress}); err != nil {
				a.logger.Info("ws write failed", "session", sessionID, "error", err)
				return
			}
		case <-done:
			return
		}
	}
}
