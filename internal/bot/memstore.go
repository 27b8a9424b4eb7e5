package bot

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-process Store used when no database is configured, and as
// the store double in tests. Append assigns timestamps; insertion order breaks
// ties.
type MemStore struct {
	mu     sync.Mutex
	turns  []Turn
	nextID int64
	now    func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{nextID: 1, now: time.Now}
}

func (m *MemStore) Append(_ context.Context, turn *Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	turn.ID = m.nextID
	m.nextID++
	turn.CreatedAt = m.now()
	m.turns = append(m.turns, *turn)
	return nil
}

func (m *MemStore) ListByUser(_ context.Context, userID string, limit int) ([]Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Turn
	for _, t := range m.turns {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *MemStore) ListRecent(_ context.Context, limit int) ([]Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.turns)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Turn, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.turns[i])
	}
	return out, nil
}

func (m *MemStore) ListUsers(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	// Walk newest first so the most recently active user comes first.
	for i := len(m.turns) - 1; i >= 0; i-- {
		id := m.turns[i].UserID
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}
