package auth

import (
	"context"
	"errors"
	"time"

	"github.com/aquasur/aquasur-backend/pkg/auth"
	"github.com/aquasur/aquasur-backend/pkg/config"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/security"
)

// repository is the account lookup surface the service depends on.
type repository interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

// Service authenticates back-office users.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult carries the issued token and the authenticated account.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Admin     *models.AdminUser
}

type service struct {
	repo repository
	cfg  config.JWTConfig
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the auth service.
func NewService(r repository, cfg config.JWTConfig, logg *logger.Logger) (Service, error) {
	if r == nil {
		return nil, errors.New("auth service: repository is required")
	}
	if logg == nil {
		return nil, errors.New("auth service: logger is required")
	}
	return &service{repo: r, cfg: cfg, logg: logg, now: time.Now}, nil
}

// Login verifies credentials and mints an access token. Unknown accounts and
// wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	invalid := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading admin account")
	}
	if admin == nil {
		return nil, invalid
	}

	match, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !match {
		s.logg.Warn(s.logg.WithAdminID(ctx, admin.ID.String()), "auth.login.bad_password")
		return nil, invalid
	}

	now := s.now()
	token, err := auth.MintAccessToken(s.cfg, now, auth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    auth.RoleAdmin,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	s.logg.Info(s.logg.WithAdminID(ctx, admin.ID.String()), "auth.login.success")
	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.cfg.ExpirationMinutes) * time.Minute),
		Admin:     admin,
	}, nil
}
