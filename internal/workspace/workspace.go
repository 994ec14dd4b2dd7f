// Package workspace gives every browser its own catalog and quiz session.
// Nothing is shared between workspaces.
package workspace

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/playperu/quizdesk/internal/quiz"
)

// Workspace owns one Catalog+Session pair. Intents run one at a time.
type Workspace struct {
	ID string

	mu      sync.Mutex
	catalog *quiz.Catalog
	session *quiz.Session

	now      func() time.Time
	lastSeen atomic.Int64 // unix nanos
}

func newWorkspace(id string, now func() time.Time) *Workspace {
	catalog := quiz.NewCatalog()
	w := &Workspace{
		ID:      id,
		catalog: catalog,
		session: quiz.NewSession(catalog, quiz.WithClock(now)),
		now:     now,
	}
	w.touch()
	return w
}

// Do runs fn with exclusive access to the workspace state.
func (w *Workspace) Do(fn func(c *quiz.Catalog, s *quiz.Session) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.touch()
	return fn(w.catalog, w.session)
}

// Snapshot is a convenience read of the session state.
func (w *Workspace) Snapshot() quiz.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.Snapshot()
}

func (w *Workspace) LastSeen() time.Time {
	return time.Unix(0, w.lastSeen.Load())
}

func (w *Workspace) touch() {
	w.lastSeen.Store(w.now().UnixNano())
}
