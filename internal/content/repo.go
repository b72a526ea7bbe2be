package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aquasur/aquasur-backend/internal/repo"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
)

// Repo persists editable site content and typed settings.
type Repo struct {
	repo.Base
}

// NewRepo constructs the content repository.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Base: repo.NewBase(db)}
}

// ListEntries returns all content entries ordered by key.
func (r *Repo) ListEntries(ctx context.Context) ([]models.ContentEntry, error) {
	var entries []models.ContentEntry
	err := r.DB(ctx).Order("key ASC").Find(&entries).Error
	return entries, err
}

// GetEntryByKey loads one entry by its section key.
func (r *Repo) GetEntryByKey(ctx context.Context, key string) (*models.ContentEntry, error) {
	var entry models.ContentEntry
	err := r.DB(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetEntry loads one entry by id.
func (r *Repo) GetEntry(ctx context.Context, id uuid.UUID) (*models.ContentEntry, error) {
	var entry models.ContentEntry
	err := r.DB(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateEntry inserts a content row.
func (r *Repo) CreateEntry(ctx context.Context, entry *models.ContentEntry) error {
	return r.DB(ctx).Create(entry).Error
}

// UpdateEntry saves the mutable columns.
func (r *Repo) UpdateEntry(ctx context.Context, entry *models.ContentEntry) error {
	return r.DB(ctx).
		Model(entry).
		Select("key", "title", "body_html", "image").
		Updates(entry).Error
}

// DeleteEntry removes the entry.
func (r *Repo) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&models.ContentEntry{}, "id = ?", id).Error
}

// ListSettings returns all settings ordered by key.
func (r *Repo) ListSettings(ctx context.Context) ([]models.Setting, error) {
	var settings []models.Setting
	err := r.DB(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}

// GetSettingByKey loads one setting.
func (r *Repo) GetSettingByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.DB(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// UpsertSetting writes the setting, replacing type and value on conflict.
func (r *Repo) UpsertSetting(ctx context.Context, setting *models.Setting) error {
	existing, err := r.GetSettingByKey(ctx, setting.Key)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.DB(ctx).Create(setting).Error
	}
	setting.ID = existing.ID
	return r.DB(ctx).
		Model(setting).
		Select("type", "value").
		Updates(setting).Error
}

// DeleteSetting removes the setting by key.
func (r *Repo) DeleteSetting(ctx context.Context, key string) error {
	return r.DB(ctx).Delete(&models.Setting{}, "key = ?", key).Error
}
