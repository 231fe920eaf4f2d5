package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stackit/internal/common"
	"stackit/internal/common/security"
	"stackit/internal/domain/model"
	"stackit/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResult struct {
	User  model.PublicUser
	Token string
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrMissingFields
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same signal as a wrong password so callers cannot enumerate accounts.
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Register fabricates an account and issues a token for it. The record is
// returned but never inserted into the store: re-login with the same
// credentials fails the lookup. The repository exposes Insert so a durable
// store can change this without touching handlers.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrMissingFields
	}

	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, common.ErrUserExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             time.Now().UnixMilli(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Reputation:     1,
		CreatedAt:      time.Now(),
	}

	token, err := security.GenerateToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}
