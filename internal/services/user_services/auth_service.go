// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/forohub/go-foro-api/internal/auth"
	"github.com/forohub/go-foro-api/internal/domain"
	userrepo "github.com/forohub/go-foro-api/internal/repository/user"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Logger is the logging surface user services need. Satisfied by
// services.Logger.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// AuthService registers accounts and issues JWTs for the API surface.
type AuthService struct {
	userRepo  userrepo.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    Logger
}

func NewAuthService(userRepo userrepo.UserRepository, jwtSecret string, tokenTTL time.Duration, logger Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	user := &domain.User{Username: username, Email: strings.TrimSpace(email)}
	if err := user.HashPassword(password); err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", created.ID, "username", created.Username)
	return created, nil
}

// Login validates credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := user.ValidatePassword(password); err != nil {
		s.logger.Warn("failed login attempt", "username", username)
		return "", ErrInvalidCredentials
	}

	return auth.GenerateJWT(user.ID, s.jwtSecret, s.tokenTTL)
}

// ValidateToken checks a bearer token and returns the account ID.
func (s *AuthService) ValidateToken(token string) (uint, error) {
	return auth.ValidateToken(token, s.jwtSecret)
}
