package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rizkypriyadi/authkit/internal/auth/domain"
	autherror "github.com/rizkypriyadi/authkit/internal/errors"
)

// Store is an in-memory credential store for tests and local development.
// It enforces the same email uniqueness the database layer would.
type Store struct {
	mu    sync.RWMutex
	users map[string]domain.User // keyed by email, as stored
}

func NewStore() *Store {
	return &Store{users: make(map[string]domain.User)}
}

func (s *Store) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}

func (s *Store) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return autherror.ErrEmailAlreadyExists
	}
	s.users[user.Email] = *user

	return nil
}

func (s *Store) UpdateLastLogin(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for email, u := range s.users {
		if u.ID == userID {
			now := time.Now()
			u.LastLoginAt = &now
			u.UpdatedAt = now
			s.users[email] = u

			return nil
		}
	}

	return autherror.ErrUserNotFound
}

// Count reports the number of stored identities matching email.
func (s *Store) Count(email string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[email]; ok {
		return 1
	}
	return 0
}

var _ domain.CredentialStore = (*Store)(nil)
