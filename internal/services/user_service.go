package services

import (
	"context"
	"errors"
	"fmt"

	"studio-backend/internal/auth"
	"studio-backend/internal/cache"
	"studio-backend/internal/models"
	"studio-backend/internal/repositories"
)

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Register creates a new user with a hashed password
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrInvalidInput)
	}

	existingUser, _ := s.Repo.GetByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, fmt.Errorf("email already registered: %w", ErrInvalidInput)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

var errInvalidCredentials = errors.New("invalid email or password")

// Login authenticates a user and returns a JWT token. Verified credentials
// are cached in Redis for a short window to skip bcrypt on repeat logins.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrInvalidInput)
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errInvalidCredentials
	}

	if cachedID, ok := cache.GetCachedAuth(ctx, req.Email, req.Password); !ok || cachedID != user.ID {
		if !auth.VerifyPassword(user.PasswordHash, req.Password) {
			return nil, errInvalidCredentials
		}
		cache.CacheAuth(ctx, req.Email, req.Password, user.ID)
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}
