package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jobsapi/jobs-api-go/internal/apperr"
	"github.com/jobsapi/jobs-api-go/internal/crypto"
	"github.com/jobsapi/jobs-api-go/internal/model"
	"github.com/jobsapi/jobs-api-go/internal/repository"
)

const (
	msgInvalidCredentials = "Invalid Credentials"
	msgMissingLogin       = "Please provide email and password"
	msgDuplicateEmail     = "Duplicate value entered for email field, please choose another value"
)

// UserStore is the persistence the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// AuthService handles registration and login.
type AuthService struct {
	users     UserStore
	hasher    PasswordHasher
	jwtSecret string
	jwtExpiry time.Duration

	// dummyDigest is compared against on unknown emails so both login
	// failures cost one hash comparison.
	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, hasher PasswordHasher, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register validates and stores a new user and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := req.Validate(); err != nil {
		return model.AuthResponse{}, validationError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, apperr.Internal(err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, apperr.Validation(msgDuplicateEmail)
		}
		slog.ErrorContext(ctx, "creating user failed", "error", err)
		return model.AuthResponse{}, apperr.Internal(err)
	}

	return s.authResponse(user)
}

// Login checks the credentials and returns a token. Unknown emails and wrong
// passwords fail identically.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return model.AuthResponse{}, apperr.BadRequest(msgMissingLogin)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.Verify(req.Password, s.dummy(ctx))
			return model.AuthResponse{}, apperr.Unauthenticated(msgInvalidCredentials)
		}
		slog.ErrorContext(ctx, "looking up user failed", "error", err)
		return model.AuthResponse{}, apperr.Internal(err)
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, apperr.Unauthenticated(msgInvalidCredentials)
	}

	return s.authResponse(user)
}

func (s *AuthService) dummy(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("dummy-password-for-unknown-users")
		if err != nil {
			slog.ErrorContext(ctx, "hashing dummy password failed", "error", err)
			return
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}

// UserExists reports whether the user with the given ID is still stored.
func (s *AuthService) UserExists(ctx context.Context, userID string) (bool, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) authResponse(user *model.User) (model.AuthResponse, error) {
	token, err := crypto.GenerateToken(user.ID, user.Name, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, apperr.Internal(err)
	}

	return model.AuthResponse{
		User:  model.UserResponse{Name: user.Name},
		Token: token,
	}, nil
}

// validationError converts a model validation failure into an apperr.
func validationError(err error) error {
	if msg, ok := model.ValidationMessage(err); ok {
		return apperr.Validation(msg)
	}
	return apperr.Internal(err)
}
