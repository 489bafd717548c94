package service

import (
	"context"
	"errors"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrMissingCredentials = errors.New("email and password are required")

// UserService handles user auth logic.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Authenticate checks email and password against the registry. Both must
// match exactly; nothing is trimmed or case-folded.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (dom.User, error) {
	if email == "" || password == "" {
		return dom.User{}, ErrMissingCredentials
	}
	u, err := s.repo.Lookup(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	return u, nil
}
