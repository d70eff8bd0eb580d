package session

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Registry caches one Session per secret id: fetch once, browse many times.
// Sessions live until Evict or InvalidateAll.
type Registry struct {
	client Fetcher
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	group    singleflight.Group

	// Bumped by Evict (per id) and InvalidateAll (epoch). A fetch only
	// caches its session if neither moved while it was running.
	gens     map[string]uint64
	epoch    uint64
	inflight map[string]int
}

type generation struct {
	epoch uint64
	id    uint64
}

// NewRegistry creates an empty registry backed by client
func NewRegistry(client Fetcher, opts ...Option) *Registry {
	o := buildOptions(opts)
	return &Registry{
		client:   client,
		logger:   o.logger,
		sessions: make(map[string]*Session),
		gens:     make(map[string]uint64),
		inflight: make(map[string]int),
	}
}

// Get returns the cached session for id, fetching and classifying the value
// on first access. Concurrent calls for one id share a single fetch. Nothing
// is cached when the fetch fails.
func (r *Registry) Get(ctx context.Context, id string) (*Session, error) {
	if s, ok := r.lookup(id); ok {
		return s, nil
	}

	v, err, _ := r.group.Do(id, func() (interface{}, error) {
		r.mu.Lock()
		if s, ok := r.sessions[id]; ok {
			r.mu.Unlock()
			return s, nil
		}
		started := r.generation(id)
		r.inflight[id]++
		r.mu.Unlock()

		defer func() {
			r.mu.Lock()
			if r.inflight[id]--; r.inflight[id] == 0 {
				delete(r.inflight, id)
			}
			r.mu.Unlock()
		}()

		raw, err := r.client.GetSecretValue(ctx, id)
		if err != nil {
			r.logger.Warn("secret fetch failed", "id", id, "error", err)
			return nil, &UpstreamError{Op: OpGetSecretValue, ID: id, Err: err}
		}

		s := newSession(id, Classify(raw))

		r.mu.Lock()
		if existing, ok := r.sessions[id]; ok {
			s = existing
		} else if r.generation(id) == started {
			r.sessions[id] = s
		}
		r.mu.Unlock()

		r.logger.Debug("secret fetched", "id", id, "kind", s.Value().Kind().String())
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// generation must be called with r.mu held
func (r *Registry) generation(id string) generation {
	return generation{epoch: r.epoch, id: r.gens[id]}
}

func (r *Registry) lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Evict drops the cached session for id, if any. A fetch of id still in
// flight is not cached, and the next Get fetches again.
func (r *Registry) Evict(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.gens[id]++
	r.mu.Unlock()
	r.group.Forget(id)
	r.logger.Debug("session evicted", "id", id)
}

// InvalidateAll drops every cached session, e.g. when switching accounts.
func (r *Registry) InvalidateAll() {
	r.mu.Lock()
	r.sessions = make(map[string]*Session)
	r.gens = make(map[string]uint64)
	r.epoch++
	inflight := make([]string, 0, len(r.inflight))
	for id := range r.inflight {
		inflight = append(inflight, id)
	}
	r.mu.Unlock()

	for _, id := range inflight {
		r.group.Forget(id)
	}
	r.logger.Debug("sessions invalidated")
}

// Cached reports whether a session for id is held.
func (r *Registry) Cached(id string) bool {
	_, ok := r.lookup(id)
	return ok
}

// Len returns the number of cached sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
