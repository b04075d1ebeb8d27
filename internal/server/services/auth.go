package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/cryptox"
	"github.com/dmitrijs2005/pwakit/internal/logging"
	"github.com/dmitrijs2005/pwakit/internal/server/auth"
	"github.com/dmitrijs2005/pwakit/internal/server/config"
)

// AdminSubject is the subject of every admin access token.
const AdminSubject = "admin"

// AuthService checks the admin password and mints the tokens guarding the
// admin surface.
type AuthService struct {
	secret     []byte
	salt       string
	hash       string
	tokenTTL   time.Duration
	formKeyTTL time.Duration
	logger     logging.Logger
}

func NewAuthService(cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		secret:     []byte(cfg.SecretKey),
		salt:       cfg.AdminPasswordSalt,
		hash:       cfg.AdminPasswordHash,
		tokenTTL:   cfg.TokenTTL,
		formKeyTTL: cfg.FormKeyTTL,
		logger:     logger.With("module", "auth"),
	}
}

// Login verifies password and returns an access token. Without configured
// credentials every attempt fails.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if s.hash == "" || s.salt == "" || !cryptox.VerifyPassword([]byte(password), s.salt, s.hash) {
		s.logger.Warn(ctx, "admin login failed")
		return "", common.ErrorUnauthorized
	}
	return auth.GenerateToken(AdminSubject, s.secret, s.tokenTTL)
}

// Authenticate validates an access token.
func (s *AuthService) Authenticate(token string) error {
	sub, err := auth.GetSubjectFromToken(token, s.secret)
	if err != nil {
		return err
	}
	if sub != AdminSubject {
		return common.ErrInvalidToken
	}
	return nil
}

func (s *AuthService) FormKey() (string, error) {
	return auth.GenerateFormKey(s.secret, s.formKeyTTL)
}

func (s *AuthService) CheckFormKey(key string) error {
	return auth.CheckFormKey(key, s.secret)
}

func (s *AuthService) ConfirmKey(path string) (string, error) {
	return auth.GenerateConfirmKey(path, s.secret, s.formKeyTTL)
}

func (s *AuthService) CheckConfirmKey(key, path string) error {
	return auth.CheckConfirmKey(key, path, s.secret)
}
