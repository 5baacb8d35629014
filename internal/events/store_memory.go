package events

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
	mu     sync.RWMutex
	events map[string]Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: make(map[string]Event)}
}

func (s *MemoryStore) List(_ context.Context, page query.Page) ([]Event, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []Event{}
	for _, event := range s.events {
		if page.MatchesText(event.Title) && page.MatchesStatus(event.Status) {
			matched = append(matched, event)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(page.Skip())
	if start > len(matched) {
		return []Event{}, total, nil
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return event, nil
}

func (s *MemoryStore) Insert(_ context.Context, event Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	s.events[event.ID.Hex()] = event
	return event.ID.Hex(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, in UpdateInput, now time.Time) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	if in.Title != "" {
		event.Title = in.Title
	}
	if in.Description != "" {
		event.Description = in.Description
	}
	if in.OrganizerName != "" {
		event.OrganizerName = in.OrganizerName
	}
	if in.OrganizerEmail != "" {
		event.OrganizerEmail = in.OrganizerEmail
	}
	if in.EventDate != "" {
		event.EventDate = in.EventDate
	}
	if in.Status != "" {
		event.Status = in.Status
	}
	if in.Location != nil {
		event.Location = in.Location
	}
	event.UpdatedAt = &now
	s.events[id] = event
	return event, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}
