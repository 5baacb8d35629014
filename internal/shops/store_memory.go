package shops

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
	shops map[string]Shop

	// ListCalls counts List invocations so tests can assert that rejected
	// pagination input never reaches storage.
	ListCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{shops: make(map[string]Shop)}
}

func (s *MemoryStore) List(_ context.Context, page query.Page) ([]Shop, int64, error) {
	s.mu.Lock()
	s.ListCalls++
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []Shop{}
	for _, shop := range s.shops {
		if page.MatchesText(shop.Name) && page.MatchesStatus(shop.Status) {
			matched = append(matched, shop)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(page.Skip())
	if start > len(matched) {
		return []Shop{}, total, nil
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shop, ok := s.shops[id]
	if !ok {
		return Shop{}, ErrNotFound
	}
	return shop, nil
}

func (s *MemoryStore) Insert(_ context.Context, shop Shop) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	s.shops[shop.ID.Hex()] = shop
	return shop.ID.Hex(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, in UpdateInput, now time.Time) (Shop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shop, ok := s.shops[id]
	if !ok {
		return Shop{}, ErrNotFound
	}
	if in.Name != "" {
		shop.Name = in.Name
	}
	if in.Description != "" {
		shop.Description = in.Description
	}
	if in.Category != "" {
		shop.Category = in.Category
	}
	if in.Status != "" {
		shop.Status = in.Status
	}
	if in.Owner != "" {
		shop.Owner = in.Owner
	}
	if in.Contact != "" {
		shop.Contact = in.Contact
	}
	if in.Images != nil {
		shop.Images = in.Images
	}
	if in.Location != nil {
		shop.Location = in.Location
	}
	if in.OpeningHours != nil {
		shop.OpeningHours = in.OpeningHours
	}
	shop.UpdatedAt = &now
	s.shops[id] = shop
	return shop, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shops[id]; !ok {
		return ErrNotFound
	}
	delete(s.shops, id)
	return nil
}
