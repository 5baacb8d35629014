package adminusers

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
	users map[string]AdminUser
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]AdminUser)}
}

func (s *MemoryStore) List(_ context.Context, page query.Page, emailExact string) ([]AdminUser, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := []AdminUser{}
	for _, user := range s.users {
		if emailExact != "" && user.Email != emailExact {
			continue
		}
		if !page.MatchesText(user.Email) {
			continue
		}
		user.Password = ""
		matched = append(matched, user)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := int(page.Skip())
	if start > len(matched) {
		return []AdminUser{}, total, nil
	}
	end := start + page.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return AdminUser{}, ErrNotFound
	}
	return user, nil
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (AdminUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return AdminUser{}, ErrNotFound
}

func (s *MemoryStore) Insert(_ context.Context, user AdminUser) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID.Hex()] = user
	return user.ID.Hex(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, in UpdateInput, now time.Time) (AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return AdminUser{}, ErrNotFound
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	user.UpdatedAt = &now
	s.users[id] = user
	return user, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}
