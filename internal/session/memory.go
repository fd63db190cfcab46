package session

import (
	"context"
	"sync"
	"time"

	"github.com/jjiisub/bboard/internal/domain"
)

type memoryEntry struct {
	uid     domain.UserId
	expires time.Time
}

// Memory is an in-memory Store for development and testing. Expired
// entries are dropped lazily on read.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]memoryEntry)}
}

func (m *Memory) Put(ctx context.Context, token string, uid domain.UserId, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[token] = memoryEntry{uid: uid, expires: time.Now().Add(ttl)}
	return nil
}

func (m *Memory) Get(ctx context.Context, token string) (domain.UserId, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[token]
	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expires) {
		delete(m.sessions, token)
		return 0, false, nil
	}
	return entry.uid, true, nil
}

func (m *Memory) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}
