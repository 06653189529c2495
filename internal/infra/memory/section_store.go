package memory

import (
	"context"
	"sync"

	"assessment-service/internal/domain"
)

// SectionStore is an in-memory implementation of app.SectionRepository.
// Sections are kept in insertion order for listing.
type SectionStore struct {
	mu       sync.RWMutex
	order    []string
	sections map[string]domain.Section
}

func NewSectionStore(seed ...domain.Section) *SectionStore {
	s := &SectionStore{
		sections: make(map[string]domain.Section),
	}
	for _, section := range seed {
		s.order = append(s.order, section.ID)
		s.sections[section.ID] = section
	}
	return s
}

func (s *SectionStore) List(_ context.Context) ([]domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Section, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.sections[id])
	}
	return out, nil
}

func (s *SectionStore) Get(_ context.Context, id string) (domain.Section, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	section, ok := s.sections[id]
	if !ok {
		return domain.Section{}, domain.ErrSectionNotFound
	}
	return section, nil
}

func (s *SectionStore) Put(_ context.Context, section domain.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[section.ID]; !ok {
		s.order = append(s.order, section.ID)
	}
	s.sections[section.ID] = section
	return nil
}

func (s *SectionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[id]; !ok {
		return domain.ErrSectionNotFound
	}
	delete(s.sections, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
