package repo

import (
	"context"
	"errors"

	dom "taskmanager/internal/domain"
)

// ErrNoRows is returned when a lookup matches nothing.
var ErrNoRows = errors.New("no rows in result set")

// UserRepo provides read access to provisioned users.
type UserRepo interface {
	Lookup(ctx context.Context, email, password string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
}

// MemUserRepo implements UserRepo over a fixed in-memory registry.
type MemUserRepo struct {
	users []dom.User
}

// NewMemUserRepo returns a registry holding a copy of users.
func NewMemUserRepo(users []dom.User) *MemUserRepo {
	cp := make([]dom.User, len(users))
	copy(cp, users)
	return &MemUserRepo{users: cp}
}

// Lookup returns the user whose email and password both match exactly.
func (r *MemUserRepo) Lookup(ctx context.Context, email, password string) (dom.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return dom.User{}, ErrNoRows
}

// GetByID returns the user by ID.
func (r *MemUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return dom.User{}, ErrNoRows
}
