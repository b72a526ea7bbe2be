package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/aquasur/aquasur-backend/internal/repo"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
)

// Repo loads back-office accounts.
type Repo struct {
	repo.Base
}

// NewRepo constructs the auth repository.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Base: repo.NewBase(db)}
}

// GetByEmail loads one admin account by email, case-insensitive.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.DB(ctx).
		First(&user, "lower(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
