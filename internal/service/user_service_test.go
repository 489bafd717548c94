package service

import (
	"context"
	"errors"
	"testing"

	dom "taskmanager/internal/domain"
	"taskmanager/internal/repo"
)

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(repo.NewMemUserRepo([]dom.User{
		{ID: 1, Email: "teste@unisagrado.edu", Password: "123456", Name: "Usuário Teste"},
	}))

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "teste@unisagrado.edu", "123456", nil},
		{"wrong password", "teste@unisagrado.edu", "senha_errada", ErrInvalidCredentials},
		{"unknown email", "outro@unisagrado.edu", "123456", ErrInvalidCredentials},
		{"email is case sensitive", "TESTE@unisagrado.edu", "123456", ErrInvalidCredentials},
		{"no trimming", " teste@unisagrado.edu", "123456", ErrInvalidCredentials},
		{"missing email", "", "123456", ErrMissingCredentials},
		{"missing password", "teste@unisagrado.edu", "", ErrMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.ID != 1 || u.Name != "Usuário Teste" {
				t.Fatalf("got %+v", u)
			}
		})
	}
}
