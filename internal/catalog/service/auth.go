package service

import (
	"context"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"storefront/pkg/config"
	apperrors "storefront/pkg/errors"
	"storefront/pkg/model"
	"storefront/pkg/validator"
)

type AuthService interface {
	Login(ctx context.Context, creds *model.Credentials) (*model.Session, error)
}

type authService struct {
	validator *validator.Validator
	cfg       *config.Config
}

func NewAuthService(validator *validator.Validator, cfg *config.Config) AuthService {
	return &authService{
		validator: validator,
		cfg:       cfg,
	}
}

// Login checks the configured admin credentials and hands back the
// configured bearer token. The password hash is checked even when the
// username is wrong.
func (s *authService) Login(_ context.Context, creds *model.Credentials) (*model.Session, error) {
	if result := s.validator.Validate(creds); !result.Valid {
		return nil, result.Err()
	}

	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.cfg.AdminUsername)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(creds.Password))

	if !userOK || passErr != nil {
		s.cfg.Log.Warn("Admin login rejected", "username", creds.Username)
		return nil, apperrors.Unauthorized("Invalid username or password")
	}

	s.cfg.Log.Info("Admin logged in", "username", creds.Username)
	return &model.Session{Token: s.cfg.AdminToken}, nil
}
