// Package session holds the operator's backend tokens. The storage is
// injectable so the HTTP clients never reach for ambient state.
package session

import (
	"context"
	"sync"
)

const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// Store persists the access and refresh tokens. A missing token reads as ""
// with a nil error.
type Store interface {
	GetToken(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error

	GetRefreshToken(ctx context.Context) (string, error)
	SetTokens(ctx context.Context, accessToken, refreshToken string) error
	// Clear removes both tokens.
	Clear(ctx context.Context) error
}

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

func (m *MemoryStore) GetToken(ctx context.Context) (string, error) {
	return m.get(KeyAccessToken), nil
}

func (m *MemoryStore) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyAccessToken] = token
	return nil
}

func (m *MemoryStore) ClearToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, KeyAccessToken)
	return nil
}

func (m *MemoryStore) GetRefreshToken(ctx context.Context) (string, error) {
	return m.get(KeyRefreshToken), nil
}

func (m *MemoryStore) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[KeyAccessToken] = accessToken
	if refreshToken != "" {
		m.values[KeyRefreshToken] = refreshToken
	}
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, KeyAccessToken)
	delete(m.values, KeyRefreshToken)
	return nil
}
