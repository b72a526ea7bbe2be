package addons

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aquasur/aquasur-backend/internal/repo"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/enums"
)

// Filter narrows addon listings.
type Filter struct {
	Kind       *enums.AddonKind
	ActiveOnly bool
}

// Repo persists equipment and accessory rows.
type Repo struct {
	repo.Base
}

// NewRepo constructs the addon repository.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Base: repo.NewBase(db)}
}

// List returns addons ordered by name, optionally narrowed by kind.
func (r *Repo) List(ctx context.Context, filter Filter) ([]models.Addon, error) {
	q := r.DB(ctx).Order("name ASC")
	if filter.Kind != nil {
		q = q.Where("kind = ?", *filter.Kind)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var addons []models.Addon
	if err := q.Find(&addons).Error; err != nil {
		return nil, err
	}
	return addons, nil
}

// Get loads one addon by id.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*models.Addon, error) {
	var addon models.Addon
	err := r.DB(ctx).First(&addon, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &addon, nil
}

// GetByIDs loads the addons matching the supplied ids.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var addons []models.Addon
	err := r.DB(ctx).Where("id IN ?", ids).Find(&addons).Error
	return addons, err
}

// Create inserts an addon row.
func (r *Repo) Create(ctx context.Context, addon *models.Addon) error {
	return r.DB(ctx).Create(addon).Error
}

// Update saves the mutable columns.
func (r *Repo) Update(ctx context.Context, addon *models.Addon) error {
	return r.DB(ctx).
		Model(addon).
		Select("kind", "name", "price", "required", "image", "is_active").
		Updates(addon).Error
}

// Delete removes the addon and its product links.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM product_addons WHERE addon_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Addon{}, "id = ?", id).Error
	})
}
