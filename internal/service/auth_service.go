package service

import (
	"context"
	"log/slog"

	"github.com/fluxyapp/fluxy/internal/auth"
	"github.com/fluxyapp/fluxy/internal/models"
)

// AuthService wraps registration and login, pairing the authenticator with
// JWT session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new account and returns the user with a session token.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}
