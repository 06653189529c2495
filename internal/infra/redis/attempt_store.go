package redis

import (
	"context"
	"sync"
	"time"

	"assessment-service/internal/app"

	"github.com/redis/go-redis/v9"
)

// AttemptStore is a Redis-aware implementation of app.AttemptRepository.
// Notes:
//   - Live attempts stay in a local in-memory map because the state machine
//     serializes answer/submit traffic in-process.
//   - Redis marks attempt liveness with a TTL slightly past the time budget
//     (and could be extended to share attempt snapshots across instances).
type AttemptStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	live   map[string]*app.Attempt
}

func NewAttemptStore(client *redis.Client, ttl time.Duration) *AttemptStore {
	return &AttemptStore{
		client: client,
		ttl:    ttl,
		live:   make(map[string]*app.Attempt),
	}
}

func (s *AttemptStore) Put(attempt *app.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[attempt.ID()] = attempt
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(attempt.ID()), attempt.SectionID(), s.ttl).Err()
}

func (s *AttemptStore) Get(id string) (*app.Attempt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	attempt, ok := s.live[id]
	return attempt, ok
}

func (s *AttemptStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *AttemptStore) key(id string) string {
	return "attempt:live:" + id
}
