package memory

import (
	"context"
	"sync"

	"assessment-service/internal/domain"

	"github.com/google/uuid"
)

// ResultStore is an in-memory append-only result collection. Appends from
// concurrent attempts are serialized under the mutex so no write is lost.
type ResultStore struct {
	mu      sync.RWMutex
	results []domain.Result
}

func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Append stores the result, assigning an id when absent. The stored copy is
// detached from the caller's selections map.
func (s *ResultStore) Append(_ context.Context, result *domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	stored := *result
	stored.Selections = make(map[int]int, len(result.Selections))
	for k, v := range result.Selections {
		stored.Selections[k] = v
	}
	s.results = append(s.results, stored)
	return nil
}

// Query returns matching results in insertion order.
func (s *ResultStore) Query(_ context.Context, filter domain.ResultFilter) ([]domain.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Result, 0, len(s.results))
	for _, r := range s.results {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
