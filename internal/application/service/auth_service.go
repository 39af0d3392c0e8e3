package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks and registers signin credentials
type AuthService interface {
	Signin(ctx context.Context, username, password string) (*entity.SigninResult, error)
	Register(ctx context.Context, username, password string, admin bool) error
}

type authServiceImpl struct {
	credRepo port.CredentialRepository
	cost     int
	logger   Logger
}

// NewAuthService creates a new AuthService. A zero cost uses bcrypt.DefaultCost.
func NewAuthService(credRepo port.CredentialRepository, cost int, logger Logger) AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &authServiceImpl{
		credRepo: credRepo,
		cost:     cost,
		logger:   logger,
	}
}

// Signin returns ErrInvalidCredentials for unknown users and wrong passwords alike
func (s *authServiceImpl) Signin(ctx context.Context, username, password string) (*entity.SigninResult, error) {
	cred, err := s.credRepo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error("Failed to load credential", "error", err)
		return nil, entity.NewError(entity.KindDatabase, "failed to load credential", err)
	}
	if cred == nil {
		return nil, entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("Stored hash is unusable", "error", err, "username", username)
		}
		return nil, entity.ErrInvalidCredentials
	}

	s.logger.Info("User signed in", "username", username, "admin", cred.Admin)
	return &entity.SigninResult{
		Username: username,
		Password: password,
		Admin:    cred.Admin,
	}, nil
}

// Register creates or replaces an account
func (s *authServiceImpl) Register(ctx context.Context, username, password string, admin bool) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return entity.ValidationError("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return entity.NewError(entity.KindValidation, "password cannot be hashed", err)
	}

	if err := s.credRepo.Upsert(ctx, &entity.Credential{
		Username:     username,
		PasswordHash: string(hash),
		Admin:        admin,
	}); err != nil {
		return entity.NewError(entity.KindDatabase, "failed to save credential", err)
	}

	s.logger.Info("User registered", "username", username, "admin", admin)
	return nil
}
