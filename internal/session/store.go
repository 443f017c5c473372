package session

import (
	"context"
	"sync"
	"time"

	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/google/uuid"
)

// Store resolves sessions by ID and persists mutations. GetOrCreate with an
// empty or unknown ID mints a fresh session.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	GetOrCreate(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	session  *Session
	lastSeen time.Time
}

// MemoryStore keeps sessions in process memory with a TTL enforced by
// Sweep, which the scheduler runs periodically.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return entry.session, nil
}

func (m *MemoryStore) GetOrCreate(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if entry, ok := m.sessions[id]; ok {
			entry.lastSeen = time.Now()
			return entry.session, nil
		}
	}

	sess := New(uuid.New().String())
	m.sessions[sess.ID] = &memoryEntry{session: sess, lastSeen: time.Now()}

	logger.Debug("Session created", map[string]interface{}{
		"session_id": sess.ID,
	})
	return sess, nil
}

// Save refreshes the session's last-seen time. The session object itself is
// shared, so mutations are already visible.
func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.sessions[s.ID]; ok {
		entry.lastSeen = time.Now()
	} else {
		m.sessions[s.ID] = &memoryEntry{session: s, lastSeen: time.Now()}
	}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep drops sessions idle longer than the TTL and returns how many were
// removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.ttl)
	removed := 0
	for id, entry := range m.sessions {
		if entry.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		logger.Info("Expired sessions swept", map[string]interface{}{
			"removed":   removed,
			"remaining": len(m.sessions),
		})
	}
	return removed
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
