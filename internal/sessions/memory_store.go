package sessions

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps revocations in process. Used for single-instance
// deployments (SESSION_STORE=memory) and tests.
type MemoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		revoked: make(map[string]time.Time),
		now:     now,
	}
}

func (m *MemoryStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.revoked[tokenID] = m.now().Add(ttl)
	m.sweepLocked()
	return nil
}

func (m *MemoryStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(expiry) {
		delete(m.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

func (m *MemoryStore) sweepLocked() {
	now := m.now()
	for id, expiry := range m.revoked {
		if !now.Before(expiry) {
			delete(m.revoked, id)
		}
	}
}
