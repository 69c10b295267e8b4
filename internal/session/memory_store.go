package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default user-session store. Sessions live only as
// long as the process; a restart logs everyone out.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]UserSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]UserSession)}
}

func (m *MemoryStore) Create(_ context.Context, s UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Sid] = s
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sid string) (*UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sid]
	if !ok {
		return nil, nil
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, sid)
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}
