package service

import (
	"context"
	"fmt"

	"achiever/internal/model"
	"achiever/internal/store"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct{ store store.Store }

func NewAuthService(st store.Store) *AuthService { return &AuthService{store: st} }

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("wrong password")
	}
	return u, nil
}
