package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aquasur/aquasur-backend/internal/repo"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/pagination"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	CategoryID *uuid.UUID
	ActiveOnly bool
	Limit      int
	Cursor     *pagination.Cursor
}

// Repo persists catalog entities.
type Repo struct {
	repo.Base
}

// NewRepo constructs the catalog repository.
func NewRepo(db *gorm.DB) *Repo {
	return &Repo{Base: repo.NewBase(db)}
}

// ListCategories returns every category ordered for the storefront.
func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB(ctx).
		Order("position ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

// GetCategory loads one category by id.
func (r *Repo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.DB(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts a category row.
func (r *Repo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).Create(category).Error
}

// UpdateCategory saves all mutable category columns.
func (r *Repo) UpdateCategory(ctx context.Context, category *models.Category) error {
	return r.DB(ctx).
		Model(category).
		Select("name", "slug", "position").
		Updates(category).Error
}

// DeleteCategory removes the category and detaches its products.
func (r *Repo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
}

// CountProductsInCategory reports how many products reference a category.
func (r *Repo) CountProductsInCategory(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}

// ListProducts returns a page of products newest first, addons and category preloaded.
func (r *Repo) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.DB(ctx).
		Preload("Category").
		Preload("Addons").
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(filter.Limit))

	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", filter.Cursor.CreatedAt, filter.Cursor.ID)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct loads one product with its category and addons.
func (r *Repo) GetProduct(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Product, error) {
	q := r.DB(ctx).
		Preload("Category").
		Preload("Addons")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var product models.Product
	err := q.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts the product and links its addons.
func (r *Repo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Create(product).Error
}

// UpdateProduct saves the mutable columns and replaces the addon links.
func (r *Repo) UpdateProduct(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(product).
			Select("name", "description", "body_html", "price", "sale_price",
				"main_image", "gallery", "features", "category_id", "is_active", "position").
			Updates(product).Error; err != nil {
			return err
		}
		return tx.Model(product).Association("Addons").Replace(product.Addons)
	})
}

// DeleteProduct removes a product and its addon links.
func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		product := models.Product{ID: id}
		if err := tx.Model(&product).Association("Addons").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}
