package quotes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aquasur/aquasur-backend/internal/repo"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	"github.com/aquasur/aquasur-backend/pkg/pagination"
)

// Filter narrows quote listings for the admin panel.
type Filter struct {
	Status *enums.QuoteStatus
	Limit  int
	Cursor *pagination.Cursor
}

// Repo persists quote headers and line items.
type Repo struct {
	repo.Base
}

// NewRepo constructs the quote repository.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Base: repo.NewBase(db)}
}

// CreateWithItems writes the header and every line item in one transaction.
// Either the whole quote lands or nothing does.
func (r *Repo) CreateWithItems(ctx context.Context, quote *models.Quote) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(quote).Error
	})
}

// List returns a page of quotes newest first, line items preloaded.
func (r *Repo) List(ctx context.Context, filter Filter) ([]models.Quote, error) {
	q := r.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Limit))

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", filter.Cursor.CreatedAt, filter.Cursor.ID)
	}

	var quotes []models.Quote
	if err := q.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// Get loads one quote with its ordered line items.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	err := r.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateStatus persists a reviewed status on the header.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	return r.DB(ctx).
		Model(&models.Quote{}).
		Where("id = ?", id).
		Update("status", status).Error
}
