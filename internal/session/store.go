// Package session holds the per-browsing-session client state this service
// keeps on behalf of the UI: cached shuffle permutations and the
// recently-rated history. Both are last-write-wins and expire with the
// session; nothing here is durable application data.
package session

import (
	"context"
	"sync"
)

const recentlyRatedCap = 20

// Store is the typed session-state interface. Implementations are
// injected so handlers and the presentation pipeline can be tested
// against an in-memory fake.
type Store interface {
	// Permutation returns the cached shuffle order for a row, if any.
	Permutation(ctx context.Context, sessionID, rowTitle string) ([]string, bool, error)
	// SavePermutation caches a row's shuffle order for the session.
	SavePermutation(ctx context.Context, sessionID, rowTitle string, order []string) error
	// RecentlyRated returns the session's rated show ids, most-recent-last.
	RecentlyRated(ctx context.Context, sessionID string) ([]string, error)
	// AppendRecentlyRated records a rating event, keeping at most the
	// newest entries and at most one entry per show.
	AppendRecentlyRated(ctx context.Context, sessionID, showID string) error
	// Clear drops all state for a session.
	Clear(ctx context.Context, sessionID string) error
}

// Memory is a map-backed Store for tests and single-process runs.
type Memory struct {
	mu     sync.Mutex
	perms  map[string][]string
	recent map[string][]string
}

func NewMemory() *Memory {
	return &Memory{
		perms:  make(map[string][]string),
		recent: make(map[string][]string),
	}
}

func permKey(sessionID, rowTitle string) string { return sessionID + "\x00" + rowTitle }

func (m *Memory) Permutation(_ context.Context, sessionID, rowTitle string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.perms[permKey(sessionID, rowTitle)]
	return order, ok, nil
}

func (m *Memory) SavePermutation(_ context.Context, sessionID, rowTitle string, order []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.perms[permKey(sessionID, rowTitle)] = append([]string(nil), order...)
	return nil
}

func (m *Memory) RecentlyRated(_ context.Context, sessionID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.recent[sessionID]...), nil
}

func (m *Memory) AppendRecentlyRated(_ context.Context, sessionID, showID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent[sessionID] = appendRecent(m.recent[sessionID], showID)
	return nil
}

func (m *Memory) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recent, sessionID)
	for key := range m.perms {
		if len(key) > len(sessionID) && key[:len(sessionID)+1] == sessionID+"\x00" {
			delete(m.perms, key)
		}
	}
	return nil
}

// appendRecent keeps the history most-recent-last, deduplicated, capped.
func appendRecent(history []string, showID string) []string {
	out := make([]string, 0, len(history)+1)
	for _, id := range history {
		if id != showID {
			out = append(out, id)
		}
	}
	out = append(out, showID)
	if len(out) > recentlyRatedCap {
		out = out[len(out)-recentlyRatedCap:]
	}
	return out
}
