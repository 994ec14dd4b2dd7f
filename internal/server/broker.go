package server

import (
	"encoding/json"
	"sync"

	"github.com/playperu/quizdesk/internal/quiz"
)

// Event is the payload published to a workspace's subscribers.
type Event struct {
	Type  string            `json:"type"`
	State *quiz.Snapshot    `json:"state,omitempty"`
	Sets  []quiz.SetSummary `json:"sets,omitempty"`
}

const (
	EventState = "state"
	EventSets  = "sets"
)

// Broker is an in-process pub/sub for SSE events, keyed by workspace ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the given workspace.
func (b *Broker) Subscribe(workspaceID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[workspaceID] == nil {
		b.subs[workspaceID] = make(map[chan []byte]struct{})
	}
	b.subs[workspaceID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the workspace's subscribers.
func (b *Broker) Unsubscribe(workspaceID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[workspaceID], ch)
	if len(b.subs[workspaceID]) == 0 {
		delete(b.subs, workspaceID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given workspace.
func (b *Broker) Publish(workspaceID string, event Event) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[workspaceID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// Drop closes every subscriber channel of an evicted workspace.
func (b *Broker) Drop(workspaceID string) {
	b.mu.Lock()
	for ch := range b.subs[workspaceID] {
		close(ch)
	}
	delete(b.subs, workspaceID)
	b.mu.Unlock()
}

func (b *Broker) Subscribers(workspaceID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[workspaceID])
}
