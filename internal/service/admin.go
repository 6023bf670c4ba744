package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/shopchat/internal/security"
)

const adminSubject = "admin"

// AdminToken is returned by a successful back-office login
type AdminToken struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AdminService authenticates the single back-office user
type AdminService struct {
	passwordHash string
	jwtManager   *security.JWTManager
}

func NewAdminService(passwordHash string, jwtManager *security.JWTManager) *AdminService {
	return &AdminService{passwordHash: passwordHash, jwtManager: jwtManager}
}

// Enabled reports whether a password hash is configured
func (s *AdminService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *AdminService) Login(_ context.Context, password string) (*AdminToken, error) {
	if !s.Enabled() {
		return nil, ErrAuthDisabled
	}

	if err := security.CheckPassword(s.passwordHash, password); err != nil {
		log.Warn().Msg("admin login rejected")
		return nil, ErrUnauthorized
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(adminSubject)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AdminToken{AccessToken: token, ExpiresAt: expiresAt}, nil
}
