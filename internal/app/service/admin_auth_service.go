package service

import (
	"errors"
	"time"

	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/bigsofa/bigsofa-backend/pkg/util"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminAuthService exchanges the dashboard password for a signed token. The
// storefront has a single admin identity; there are no user accounts.
type AdminAuthService interface {
	Login(password string) (string, error)
}

type adminAuthService struct {
	passwordHash string
	tokenSecret  string
	tokenExpiry  time.Duration
}

func NewAdminAuthService(passwordHash, tokenSecret string, tokenExpiry time.Duration) AdminAuthService {
	return &adminAuthService{
		passwordHash: passwordHash,
		tokenSecret:  tokenSecret,
		tokenExpiry:  tokenExpiry,
	}
}

func (s *adminAuthService) Login(password string) (string, error) {
	if !util.VerifyPassword(s.passwordHash, password) {
		logger.Warn("Admin login failed: wrong password", nil)
		return "", ErrInvalidCredentials
	}

	token, err := util.GenerateAdminToken(s.tokenSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to issue admin token", err, nil)
		return "", err
	}

	logger.Info("Admin logged in", nil)
	return token, nil
}
