package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisStore keeps each session's history in a Redis list. The list index is
// the sequence number, so appends need no extra locking.
type RedisStore struct {
	client *backend.Client
	prefix string
	now    func() time.Time
}

type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix for history keys.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

func NewRedisStore(client *backend.Client, opts ...RedisOption) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	store := &RedisStore{
		client: client,
		prefix: "chromapick:history:",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

func (s *RedisStore) sessionKey(sessionID string) string {
	return s.prefix + "session:" + sessionID
}

func (s *RedisStore) sessionsKey() string {
	return s.prefix + "sessions"
}

func (s *RedisStore) recordsKey() string {
	return s.prefix + "records"
}

func (s *RedisStore) Append(ctx context.Context, record Record) (Record, error) {
	if err := validateSession(record.SessionID); err != nil {
		return Record{}, err
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = s.now().UTC()
	}
	record.Seq = 0

	data, err := json.Marshal(record)
	if err != nil {
		return Record{}, fmt.Errorf("failed to marshal record: %w", err)
	}

	var push *backend.IntCmd
	_, err = s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		push = pipe.RPush(ctx, s.sessionKey(record.SessionID), data)
		pipe.SAdd(ctx, s.sessionsKey(), record.SessionID)
		pipe.Incr(ctx, s.recordsKey())
		return nil
	})
	if err != nil {
		return Record{}, fmt.Errorf("failed to append to redis: %w", err)
	}

	record.Seq = push.Val()
	return record, nil
}

func (s *RedisStore) List(ctx context.Context, sessionID string) ([]Record, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	values, err := s.client.LRange(ctx, s.sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list from redis: %w", err)
	}

	records := make([]Record, 0, len(values))
	for i, value := range values {
		var record Record
		if err := json.Unmarshal([]byte(value), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %d: %w", i+1, err)
		}
		record.Seq = int64(i) + 1
		records = append(records, record)
	}
	return records, nil
}

func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	sessions, err := s.client.SCard(ctx, s.sessionsKey()).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	raw, err := s.client.Get(ctx, s.recordsKey()).Result()
	if errors.Is(err, backend.Nil) {
		return Stats{Sessions: int(sessions)}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count records: %w", err)
	}
	records, err := strconv.Atoi(raw)
	if err != nil {
		return Stats{}, fmt.Errorf("invalid record counter %q: %w", raw, err)
	}
	return Stats{Sessions: int(sessions), Records: records}, nil
}

// Close closes the redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
