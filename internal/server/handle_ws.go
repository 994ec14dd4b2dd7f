package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/quizdesk/internal/quiz"
	"github.com/playperu/quizdesk/internal/workspace"
)

// WSMessage is what the server writes back for every intent received over
// the WebSocket.
type WSMessage struct {
	Type     string         `json:"type" enum:"state,error"`
	State    *quiz.Snapshot `json:"state,omitempty"`
	Feedback *quiz.Feedback `json:"feedback,omitempty"`
	Error    string         `json:"error,omitempty"`
	Code     string         `json:"code,omitempty"`
}

// handleWS accepts intents as JSON messages and answers each with the new
// snapshot, the same way the HTTP intent endpoints do.
func handleWS(logger *slog.Logger, broker *Broker, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ws := workspaceFrom(r)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Hour)
		defer cancel()

		if err := wsjson.Write(ctx, conn, WSMessage{Type: EventState, State: ptr(ws.Snapshot())}); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		for {
			var in Intent
			if err := wsjson.Read(ctx, conn, &in); err != nil {
				logger.Debug("websocket read ended", "error", err)
				return
			}

			msg := dispatch(ws, in)
			if msg.State != nil {
				broker.Publish(ws.ID, Event{Type: EventState, State: msg.State})
			}

			if err := wsjson.Write(ctx, conn, msg); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}

func dispatch(ws *workspace.Workspace, in Intent) WSMessage {
	fb, snap, err := runIntent(ws, in)
	if err != nil {
		_, code := classify(err)
		return WSMessage{Type: "error", Error: err.Error(), Code: code}
	}
	return WSMessage{Type: EventState, State: &snap, Feedback: fb}
}

func ptr[T any](v T) *T { return &v }
