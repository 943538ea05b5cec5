package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"mockupgen/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The SPA may be served from another origin in development.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Progress upgrades to a websocket and streams the session's progress
// events as JSON text messages. At most one subscriber per session; a new
// connection replaces the previous one. Delivery is best-effort: events
// published while no connection is active are dropped, unless the client
// asks for the recent history with ?replay=1. The stream closes after the
// batch's complete event or when the client disconnects.
func (a *App) Progress(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")
	if sessionID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "session_id required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		return
	}
	defer conn.Close()

	events := make(chan domain.ProgressEvent, 64)
	a.Broker.Subscribe(sessionID, func(ev domain.ProgressEvent) {
		select {
		case events <- ev:
		default:
			// Slow consumer: drop rather than block the pipeline.
		}
	})
	defer a.Broker.Unsubscribe(sessionID)

	if r.URL.Query().Get("replay") == "1" {
		for _, ev := range a.Broker.History(sessionID) {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case ev := <-events:
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
			if ev.Status == domain.EventComplete {
				return
			}
		}
	}
}
