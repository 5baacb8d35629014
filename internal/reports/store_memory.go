package reports

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
	mu      sync.RWMutex
	reports map[string]Report
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]Report)}
}

func (s *MemoryStore) List(_ context.Context, page query.Page) ([]Report, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []Report{}
	for _, report := range s.reports {
		if page.MatchesText(report.Title) && page.MatchesStatus(report.Status) {
			matched = append(matched, report)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(page.Skip())
	if start > len(matched) {
		return []Report{}, total, nil
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return Report{}, ErrNotFound
	}
	return report, nil
}

func (s *MemoryStore) Insert(_ context.Context, report Report) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	s.reports[report.ID.Hex()] = report
	return report.ID.Hex(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, in UpdateInput, now time.Time) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[id]
	if !ok {
		return Report{}, ErrNotFound
	}
	if in.Title != "" {
		report.Title = in.Title
	}
	if in.Category != "" {
		report.Category = in.Category
	}
	if in.Status != "" {
		report.Status = in.Status
	}
	if in.Description != "" {
		report.Description = in.Description
	}
	if in.Images != nil {
		report.Images = in.Images
	}
	if in.Location != nil {
		report.Location = in.Location
	}
	report.UpdatedAt = &now
	s.reports[id] = report
	return report, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[id]; !ok {
		return ErrNotFound
	}
	delete(s.reports, id)
	return nil
}
