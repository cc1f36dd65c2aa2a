package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"imagemarket/api/internal/config"
	"imagemarket/api/internal/ids"
	"imagemarket/api/internal/models"
	"imagemarket/api/internal/repository"
	"imagemarket/api/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Coarse shape check only; full RFC compliance is not the point here.
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	users *repository.UserRepository
	creds security.Credentials
	cfg   *config.AppConfig
	log   zerolog.Logger
}

func NewAuthService(users *repository.UserRepository, creds security.Credentials, cfg *config.AppConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		users: users,
		creds: creds,
		cfg:   cfg,
		log:   log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthResult struct {
	User  models.User
	Token string
}

// Register creates a new user. A previously registered email is not
// rejected: the new record gets a fresh id and coexists with the old one,
// and email lookups keep resolving to the earlier record.
func (s *AuthService) Register(input RegisterInput) (AuthResult, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("missing required fields: username, email, and password are required")
	}
	if !emailPattern.MatchString(input.Email) {
		return AuthResult{}, fmt.Errorf("invalid email format")
	}

	hash, err := s.creds.Hash(input.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    models.Timestamp(),
	}

	if err := s.users.Save(user); err != nil {
		return AuthResult{}, err
	}

	token, err := security.GenerateAccessToken(s.cfg.Security.JWTSecret, user.ID, s.cfg.Security.JWTTTL)
	if err != nil {
		return AuthResult{}, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")

	return AuthResult{User: user, Token: token}, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login resolves the user by email, creating and persisting one on the fly
// when the email has never been seen (username taken from the email's local
// part). The password goes through the pluggable verifier, which in demo
// mode accepts anything.
func (s *AuthService) Login(input LoginInput) (AuthResult, error) {
	if input.Email == "" || input.Password == "" {
		return AuthResult{}, fmt.Errorf("missing required fields: email and password are required")
	}

	user, err := s.users.FindByEmail(input.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return AuthResult{}, err
		}

		hash, err := s.creds.Hash(input.Password)
		if err != nil {
			return AuthResult{}, fmt.Errorf("hash password: %w", err)
		}

		user = models.User{
			ID:           ids.New(),
			Username:     strings.SplitN(input.Email, "@", 2)[0],
			Email:        input.Email,
			PasswordHash: hash,
			CreatedAt:    models.Timestamp(),
		}
		if err := s.users.Save(user); err != nil {
			return AuthResult{}, err
		}
		s.log.Info().Str("user_id", user.ID).Msg("user created on first login")
	} else if !s.creds.Verify(input.Password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := security.GenerateAccessToken(s.cfg.Security.JWTSecret, user.ID, s.cfg.Security.JWTTTL)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) GetProfile(userID string) (models.User, error) {
	return s.users.GetByID(userID)
}

type UpdateProfileInput struct {
	Username    *string
	NewPassword *string
}

func (s *AuthService) UpdateProfile(userID string, input UpdateProfileInput) (models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return models.User{}, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.NewPassword != nil {
		hash, err := s.creds.Hash(*input.NewPassword)
		if err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Save(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
