// Package state holds the tri-state containers the dashboard pages read:
// a Resource for fetched data and a Mutation for add/update/delete calls.
package state

import (
	"context"
	"sync"
	"time"

	"quickload-admin/internal/common/logger"
	"quickload-admin/internal/common/observability"
)

// Fetch outcome labels.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusDiscarded = "discarded"
)

// Deps are the ambient collaborators shared by every container.
type Deps struct {
	Logger logger.Logger
	Obs    *observability.Observability
}

func (d Deps) log() logger.Logger {
	if d.Logger == nil {
		return logger.NewNoOpLogger()
	}
	return d.Logger
}

// Snapshot is a point-in-time copy of a Resource.
type Snapshot[T any] struct {
	Loading bool   `json:"loading"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Loaded  bool   `json:"loaded"`
}

// FetchFunc loads the resource for key. Unkeyed resources ignore key.
type FetchFunc[T any] func(ctx context.Context, key string) (T, error)

// Resource tracks one fetched value through loading, success and error.
// On failure Data keeps its previous value and Error holds a fixed message;
// the underlying error is only logged. Results from superseded or closed
// fetches are dropped.
type Resource[T any] struct {
	name    string
	failure string
	keyed   bool
	fetch   FetchFunc[T]
	deps    Deps
	logger  logger.Logger

	mu       sync.RWMutex
	key      string
	gen      uint64
	closed   bool
	inflight map[uint64]context.CancelFunc
	snap     Snapshot[T]

	wg sync.WaitGroup
}

// NewResource builds an unkeyed resource.
func NewResource[T any](name, failure string, fetch func(ctx context.Context) (T, error), deps Deps) *Resource[T] {
	return newResource(name, failure, false, "", func(ctx context.Context, _ string) (T, error) {
		return fetch(ctx)
	}, deps)
}

// NewKeyedResource builds a resource whose fetch depends on key (an id, a
// type, or both). An empty key means there is nothing to fetch yet.
func NewKeyedResource[T any](name, failure, key string, fetch func(ctx context.Context, key string) (T, error), deps Deps) *Resource[T] {
	return newResource(name, failure, true, key, fetch, deps)
}

func newResource[T any](name, failure string, keyed bool, key string, fetch FetchFunc[T], deps Deps) *Resource[T] {
	return &Resource[T]{
		name:     name,
		failure:  failure,
		keyed:    keyed,
		key:      key,
		fetch:    fetch,
		deps:     deps,
		logger:   deps.log().WithFields(map[string]interface{}{"resource": name}),
		inflight: make(map[uint64]context.CancelFunc),
		snap:     Snapshot[T]{Loading: !keyed || key != ""},
	}
}

// Mount issues the initial fetch in the background.
func (r *Resource[T]) Mount(ctx context.Context) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.load(ctx)
	}()
}

// Refetch reloads the resource and returns the resulting snapshot.
func (r *Resource[T]) Refetch(ctx context.Context) Snapshot[T] {
	return r.load(ctx)
}

// SetKey switches the resource to a new key and fetches in the background.
// Setting the current key again is a no-op.
func (r *Resource[T]) SetKey(ctx context.Context, key string) {
	r.mu.Lock()
	if !r.keyed || r.closed || r.key == key {
		r.mu.Unlock()
		return
	}
	r.key = key
	r.mu.Unlock()
	r.Mount(ctx)
}

func (r *Resource[T]) Key() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.key
}

// Snapshot returns the current state.
func (r *Resource[T]) Snapshot() Snapshot[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Close cancels in-flight fetches. Later results are discarded and further
// fetches are ignored.
func (r *Resource[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for gen, cancel := range r.inflight {
		cancel()
		delete(r.inflight, gen)
	}
}

// Wait blocks until background fetches started by Mount or SetKey return.
func (r *Resource[T]) Wait() {
	r.wg.Wait()
}

func (r *Resource[T]) load(ctx context.Context) Snapshot[T] {
	fctx, gen, key, ok := r.begin(ctx)
	if !ok {
		return r.Snapshot()
	}

	start := time.Now()
	data, err := r.fetch(fctx, key)
	return r.finish(ctx, gen, data, err, time.Since(start))
}

func (r *Resource[T]) begin(ctx context.Context) (context.Context, uint64, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, 0, "", false
	}
	if r.keyed && r.key == "" {
		r.snap.Loading = false
		return nil, 0, "", false
	}
	r.gen++
	fctx, cancel := context.WithCancel(ctx)
	r.inflight[r.gen] = cancel
	r.snap.Loading = true
	r.snap.Error = ""
	return fctx, r.gen, r.key, true
}

func (r *Resource[T]) finish(ctx context.Context, gen uint64, data T, err error, took time.Duration) Snapshot[T] {
	r.mu.Lock()
	if cancel, ok := r.inflight[gen]; ok {
		cancel()
		delete(r.inflight, gen)
	}
	if r.closed || gen != r.gen {
		snap := r.snap
		r.mu.Unlock()
		r.logger.Debug("Discarding stale fetch result", map[string]interface{}{"generation": gen})
		r.deps.Obs.RecordFetch(ctx, r.name, StatusDiscarded, took)
		return snap
	}

	r.snap.Loading = false
	if err != nil {
		r.snap.Error = r.failure
	} else {
		r.snap.Data = data
		r.snap.Error = ""
		r.snap.Loaded = true
	}
	snap := r.snap
	r.mu.Unlock()

	if err != nil {
		r.logger.Error(r.failure, map[string]interface{}{"error": err, "durationMs": took.Milliseconds()})
		r.deps.Obs.RecordFetch(ctx, r.name, StatusError, took)
	} else {
		r.deps.Obs.RecordFetch(ctx, r.name, StatusSuccess, took)
	}
	return snap
}
