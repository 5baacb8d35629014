package parks

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
	mu    sync.RWMutex
	parks map[string]Park
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{parks: make(map[string]Park)}
}

func (s *MemoryStore) List(_ context.Context, page query.Page) ([]Park, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []Park{}
	for _, park := range s.parks {
		if page.MatchesText(park.Name) && page.MatchesStatus(park.Condition) {
			matched = append(matched, park)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(page.Skip())
	if start > len(matched) {
		return []Park{}, total, nil
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (Park, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	park, ok := s.parks[id]
	if !ok {
		return Park{}, ErrNotFound
	}
	return park, nil
}

func (s *MemoryStore) Insert(_ context.Context, park Park) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if park.ID.IsZero() {
		park.ID = primitive.NewObjectID()
	}
	s.parks[park.ID.Hex()] = park
	return park.ID.Hex(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, in UpdateInput, now time.Time) (Park, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	park, ok := s.parks[id]
	if !ok {
		return Park{}, ErrNotFound
	}
	if in.Name != "" {
		park.Name = in.Name
	}
	if in.Condition != "" {
		park.Condition = in.Condition
	}
	if in.LastInspected != "" {
		park.LastInspected = in.LastInspected
	}
	if in.Images != nil {
		park.Images = in.Images
	}
	if in.Notes != "" {
		park.Notes = in.Notes
	}
	if in.Location != nil {
		park.Location = in.Location
	}
	park.UpdatedAt = &now
	s.parks[id] = park
	return park, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parks[id]; !ok {
		return ErrNotFound
	}
	delete(s.parks, id)
	return nil
}
