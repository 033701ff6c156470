package history

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps history for the life of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]Record
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string][]Record),
		now:      time.Now,
	}
}

func (s *MemoryStore) Append(_ context.Context, record Record) (Record, error) {
	if err := validateSession(record.SessionID); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.sessions[record.SessionID]
	record.Seq = int64(len(records)) + 1
	if record.RecordedAt.IsZero() {
		record.RecordedAt = s.now().UTC()
	}
	s.sessions[record.SessionID] = append(records, record)
	return record, nil
}

func (s *MemoryStore) List(_ context.Context, sessionID string) ([]Record, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.sessions[sessionID]
	out := make([]Record, len(records))
	copy(out, records)
	return out, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Sessions: len(s.sessions)}
	for _, records := range s.sessions {
		stats.Records += len(records)
	}
	return stats, nil
}
