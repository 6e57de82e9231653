package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dkazarin/mpdbmigrate/internal/common"
	"github.com/dkazarin/mpdbmigrate/internal/models"
)

// savedProfile is one persisted profile row.
type savedProfile struct {
	User    models.User
	Profile models.Profile
	Cause   models.SaveCause
}

// InMemoryStore is a Store kept entirely in memory. It mirrors the
// PostgresStore contract (idempotent wipe, upsert user semantics, safe
// concurrent distinct-key writes) and is used by tests and dry runs.
type InMemoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]models.User
	profiles map[uuid.UUID]savedProfile
}

func NewInMemoryStore() *InMemoryStore {
	s := &InMemoryStore{}
	s.reset()
	return s
}

func (s *InMemoryStore) reset() {
	s.users = make(map[uuid.UUID]models.User)
	s.profiles = make(map[uuid.UUID]savedProfile)
}

func (s *InMemoryStore) Wipe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *InMemoryStore) EnsureUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *InMemoryStore) WriteProfile(ctx context.Context, user models.User, profile *models.Profile, cause models.SaveCause) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[user.ID] = savedProfile{User: user, Profile: *profile, Cause: cause}
	return nil
}

func (s *InMemoryStore) Close() error {
	return nil
}

// UserCount reports the number of known users.
func (s *InMemoryStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// ProfileCount reports the number of persisted profiles.
func (s *InMemoryStore) ProfileCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles)
}

// Profile returns the persisted profile and save cause for a user id.
func (s *InMemoryStore) Profile(id uuid.UUID) (*models.Profile, models.SaveCause, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved, ok := s.profiles[id]
	if !ok {
		return nil, "", common.ErrorNotFound
	}
	p := saved.Profile
	return &p, saved.Cause, nil
}
