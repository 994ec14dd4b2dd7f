package server

import (
	"encoding/json"
	"testing"

	"github.com/playperu/quizdesk/internal/quiz"
)

func TestBrokerPublishesPerWorkspace(t *testing.T) {
	b := NewBroker()
	a := b.Subscribe("a")
	other := b.Subscribe("b")
	defer b.Unsubscribe("a", a)
	defer b.Unsubscribe("b", other)

	b.Publish("a", Event{Type: EventSets, Sets: []quiz.SetSummary{{Name: "math", QuestionCount: 3}}})

	select {
	case data := <-a:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if ev.Type != EventSets || len(ev.Sets) != 1 || ev.Sets[0].Name != "math" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("subscriber of a got nothing")
	}

	select {
	case data := <-other:
		t.Fatalf("subscriber of b got %s", data)
	default:
	}
}

func TestBrokerDropsSlowSubscribers(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("a")
	defer b.Unsubscribe("a", ch)

	for range cap(ch) + 5 {
		b.Publish("a", Event{Type: EventState})
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered = %d, want %d", len(ch), cap(ch))
	}
}

func TestBrokerDrop(t *testing.T) {
	b := NewBroker()
	ch1 := b.Subscribe("a")
	ch2 := b.Subscribe("a")
	if n := b.Subscribers("a"); n != 2 {
		t.Fatalf("subscribers = %d, want 2", n)
	}

	b.Drop("a")

	for _, ch := range []chan []byte{ch1, ch2} {
		if _, ok := <-ch; ok {
			t.Error("channel still open after drop")
		}
	}
	if n := b.Subscribers("a"); n != 0 {
		t.Errorf("subscribers = %d, want 0", n)
	}

	// Unsubscribing after a drop must not panic.
	b.Unsubscribe("a", ch1)
}
