package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"server/internal/domain"
)

const (
	maxUsernameLen = 80
	minPasswordLen = 6
)

// Service handles registration, login, and token issuance.
type Service struct {
	users    domain.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewService(users domain.UserRepository, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{users: users, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a new account. The username must be unique; a duplicate
// fails with ErrConflict.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLen {
		return nil, fmt.Errorf("%w: username required", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password too short", domain.ErrInvalidInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
	}
	return s.users.Create(ctx, user)
}

// Login verifies credentials and mints an access token. Unknown usernames and
// wrong passwords fail identically with ErrUnauthenticated.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, domain.ErrUnauthenticated
	}
	if !CheckPassword(user.PasswordHash, password) {
		return "", nil, domain.ErrUnauthenticated
	}

	token, err := GenerateToken(user.ID, user.Username, s.secret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
