package disruptions

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jirantetangga/internal/query"
)

// MemoryStore is the in-memory Store used by tests and local runs without a
// database.
type MemoryStore struct {
	mu          sync.RWMutex
	disruptions map[string]Disruption
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{disruptions: make(map[string]Disruption)}
}

func (s *MemoryStore) List(_ context.Context, page query.Page) ([]Disruption, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []Disruption{}
	for _, d := range s.disruptions {
		if page.MatchesText(d.Title) && page.MatchesStatus(d.Status) {
			matched = append(matched, d)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(page.Skip())
	if start > len(matched) {
		return []Disruption{}, total, nil
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (Disruption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.disruptions[id]
	if !ok {
		return Disruption{}, ErrNotFound
	}
	return d, nil
}

func (s *MemoryStore) Insert(_ context.Context, d Disruption) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	s.disruptions[d.ID.Hex()] = d
	return d.ID.Hex(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, in UpdateInput, now time.Time) (Disruption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.disruptions[id]
	if !ok {
		return Disruption{}, ErrNotFound
	}
	if in.Title != "" {
		d.Title = in.Title
	}
	if in.Description != "" {
		d.Description = in.Description
	}
	if in.Status != "" {
		d.Status = in.Status
	}
	d.UpdatedAt = &now
	s.disruptions[id] = d
	return d, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.disruptions[id]; !ok {
		return ErrNotFound
	}
	delete(s.disruptions, id)
	return nil
}
