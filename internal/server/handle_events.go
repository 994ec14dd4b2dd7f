package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/playperu/quizdesk/internal/quiz"
)

// handleEvents streams the caller's session state. A snapshot is pushed
// after every intent and, while an attempt is running, once per tick so the
// timer stays live.
func handleEvents(broker *Broker, tick time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		ws := workspaceFrom(r)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := broker.Subscribe(ws.ID)
		defer broker.Unsubscribe(ws.ID, ch)

		writeState := func(snap quiz.Snapshot) {
			data, _ := json.Marshal(Event{Type: EventState, State: &snap})
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", EventState, data)
			flusher.Flush()
		}
		writeState(ws.Snapshot())

		if tick <= 0 {
			tick = time.Second
		}
		timer := time.NewTicker(tick)
		defer timer.Stop()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				json.Unmarshal(data, &ev)
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
				flusher.Flush()
			case <-timer.C:
				if snap := ws.Snapshot(); snap.Phase == quiz.PhaseInProgress {
					writeState(snap)
				}
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
