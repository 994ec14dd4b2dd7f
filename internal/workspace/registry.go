package workspace

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("workspace not found")
	ErrClosed   = errors.New("workspace registry closed")
)

type Registry struct {
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu         sync.RWMutex
	workspaces map[string]*Workspace
	closed     bool
	onEvict    []func(id string)
}

type Option func(*Registry)

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// OnEvict registers a hook called with the ID of every evicted workspace.
func OnEvict(fn func(id string)) Option {
	return func(r *Registry) { r.onEvict = append(r.onEvict, fn) }
}

// NewRegistry keeps workspaces until they have been idle for ttl.
// A ttl of zero disables eviction.
func NewRegistry(logger *slog.Logger, ttl time.Duration, opts ...Option) *Registry {
	r := &Registry{
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
		workspaces: make(map[string]*Workspace),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create allocates a workspace with a fresh empty catalog.
func (r *Registry) Create() (*Workspace, error) {
	w := newWorkspace(uuid.NewString(), r.now)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	r.workspaces[w.ID] = w

	r.logger.Info("workspace created", "workspace", w.ID, "active", len(r.workspaces))
	return w, nil
}

func (r *Registry) Get(id string) (*Workspace, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, ErrClosed
	}
	w, ok := r.workspaces[id]
	if !ok {
		return nil, ErrNotFound
	}
	w.touch()
	return w, nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workspaces)
}

// EvictIdle drops workspaces idle for longer than the ttl and returns how
// many were removed.
func (r *Registry) EvictIdle() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var evicted []string
	for id, w := range r.workspaces {
		if w.LastSeen().Before(cutoff) {
			delete(r.workspaces, id)
			evicted = append(evicted, id)
		}
	}
	hooks := r.onEvict
	r.mu.Unlock()

	for _, id := range evicted {
		r.logger.Info("workspace evicted", "workspace", id)
		for _, fn := range hooks {
			fn(id)
		}
	}
	return len(evicted)
}

// Run evicts idle workspaces every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if r.ttl <= 0 || interval <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.EvictIdle()
		}
	}
}

// Check reports whether the registry still accepts workspaces.
func (r *Registry) Check(_ context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	return nil
}

// Close drops every workspace, runs the eviction hooks for each and makes
// Create fail with ErrClosed.
func (r *Registry) Close() error {
	r.mu.Lock()
	ids := make([]string, 0, len(r.workspaces))
	for id := range r.workspaces {
		ids = append(ids, id)
		delete(r.workspaces, id)
	}
	r.closed = true
	hooks := r.onEvict
	r.mu.Unlock()

	for _, id := range ids {
		for _, fn := range hooks {
			fn(id)
		}
	}
	return nil
}
