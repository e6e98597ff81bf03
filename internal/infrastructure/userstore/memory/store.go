package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/clauseguard/backend/internal/core/domain"
)

// Store is a demo-grade account store. Accounts live only for the process
// lifetime and passwords are compared in plain text; nothing here is a real
// security boundary.
type Store struct {
	mu    sync.RWMutex
	users map[string]string
}

func New() *Store {
	return &Store{users: make(map[string]string)}
}

func (s *Store) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	s.mu.RLock()
	stored, ok := s.users[email]
	s.mu.RUnlock()

	if !ok || stored != password {
		return nil, domain.WrapError(domain.ErrUnauthorized, "authenticate",
			fmt.Errorf("invalid credentials"))
	}
	return &domain.User{Email: email}, nil
}

func (s *Store) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "register",
			fmt.Errorf("email and password are required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, domain.WrapError(domain.ErrUserExists, "register",
			fmt.Errorf("account for %s", email))
	}
	s.users[email] = password
	return &domain.User{Email: email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
