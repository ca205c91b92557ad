package state

import (
	"context"
	"sync"

	"quickload-admin/internal/common/logger"
)

// MutationState is the observable part of a Mutation.
type MutationState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Mutation wraps one add/update/delete call. It never touches any Resource;
// callers refetch the lists they show after a successful run.
type Mutation[In, Out any] struct {
	name    string
	failure string
	run     func(ctx context.Context, in In) (Out, error)
	deps    Deps
	logger  logger.Logger

	mu    sync.RWMutex
	state MutationState
}

func NewMutation[In, Out any](name, failure string, run func(ctx context.Context, in In) (Out, error), deps Deps) *Mutation[In, Out] {
	return &Mutation[In, Out]{
		name:    name,
		failure: failure,
		run:     run,
		deps:    deps,
		logger:  deps.log().WithFields(map[string]interface{}{"mutation": name}),
	}
}

// Run performs the call. On failure the error is returned and State().Error
// holds the fixed failure message.
func (m *Mutation[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.state = MutationState{Loading: true}
	m.mu.Unlock()

	out, err := m.run(ctx, in)

	m.mu.Lock()
	m.state.Loading = false
	if err != nil {
		m.state.Error = m.failure
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Error(m.failure, map[string]interface{}{"error": err})
		m.deps.Obs.RecordMutation(ctx, m.name, StatusError)
		return out, err
	}
	m.deps.Obs.RecordMutation(ctx, m.name, StatusSuccess)
	return out, nil
}

func (m *Mutation[In, Out]) State() MutationState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}
