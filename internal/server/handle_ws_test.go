package server

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/playperu/quizdesk/internal/quiz"
)

func TestWebSocketIntents(t *testing.T) {
	ts, _, _ := newTestServer(t, Options{})
	c := newClient(t)

	importSets(t, c, ts.URL, upload{filename: "math.csv", data: csvFile("1,1+1?,1,2,3,4,2", "2,2+2?,2,3,4,5,3")})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/session/ws"
	// Dial rejects clients with a Timeout; share only the cookie jar.
	conn, _, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPClient: &http.Client{Jar: c.Jar},
	})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	var msg WSMessage
	if err := wsjson.Read(ctx, conn, &msg); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if msg.Type != EventState || msg.State == nil || msg.State.Phase != quiz.PhaseIdle {
		t.Fatalf("initial = %+v", msg)
	}

	send := func(in Intent) WSMessage {
		t.Helper()
		if err := wsjson.Write(ctx, conn, in); err != nil {
			t.Fatalf("write %s: %v", in.Type, err)
		}
		var out WSMessage
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read %s: %v", in.Type, err)
		}
		return out
	}

	if got := send(Intent{Type: IntentSelect, Name: "history"}); got.Type != "error" || got.Code != "unknown_set" {
		t.Errorf("unknown set = %+v", got)
	}

	send(Intent{Type: IntentSelect, Name: "math"})
	if got := send(Intent{Type: IntentStart}); got.State == nil || got.State.Phase != quiz.PhaseInProgress {
		t.Fatalf("start = %+v", got)
	}

	got := send(Intent{Type: IntentAnswer, Option: 2})
	if got.Feedback == nil || !got.Feedback.IsCorrect {
		t.Errorf("answer = %+v", got)
	}

	if got := send(Intent{Type: "skip"}); got.Code != "unknown_intent" {
		t.Errorf("unknown intent = %+v", got)
	}

	send(Intent{Type: IntentFinish})

	// The HTTP surface sees the same session.
	var res quiz.Results
	getJSON(t, c, ts.URL+"/api/session/results", &res)
	if res.Total != 2 || res.CorrectCount != 1 {
		t.Errorf("results = %+v", res)
	}

	conn.Close(websocket.StatusNormalClosure, "")
}
