package catalog

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/aquasur/aquasur-backend/pkg/db"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/pagination"
)

// repository is the persistence surface the service depends on.
type repository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountProductsInCategory(ctx context.Context, id uuid.UUID) (int64, error)

	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// addonLoader resolves addon rows for product linking.
type addonLoader interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Addon, error)
}

// Service exposes catalog reads for the storefront and writes for the admin panel.
type Service interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	GetProduct(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error)

	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// ListProductsInput filters and paginates product listings.
type ListProductsInput struct {
	CategoryID      *uuid.UUID
	Limit           int
	Cursor          string
	IncludeInactive bool
}

// ProductPage is one page of products plus the cursor for the next one.
type ProductPage struct {
	Products   []models.Product
	NextCursor string
}

// CategoryInput carries admin category writes.
type CategoryInput struct {
	Name     string
	Slug     string
	Position int
}

// ProductInput carries admin product writes.
type ProductInput struct {
	Name        string
	Description *string
	BodyHTML    *string
	Price       decimal.Decimal
	SalePrice   *decimal.Decimal
	MainImage   *string
	Gallery     []string
	Features    []string
	CategoryID  *uuid.UUID
	AddonIDs    []uuid.UUID
	IsActive    bool
	Position    int
}

type service struct {
	repo   repository
	addons addonLoader
	logg   *logger.Logger
}

// NewService wires the catalog service.
func NewService(r repository, addons addonLoader, logg *logger.Logger) (Service, error) {
	if r == nil {
		return nil, errors.New("catalog service: repository is required")
	}
	if addons == nil {
		return nil, errors.New("catalog service: addon loader is required")
	}
	if logg == nil {
		return nil, errors.New("catalog service: logger is required")
	}
	return &service{repo: r, addons: addons, logg: logg}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing categories")
	}
	return categories, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error) {
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	products, err := s.repo.ListProducts(ctx, ProductFilter{
		CategoryID: input.CategoryID,
		ActiveOnly: !input.IncludeInactive,
		Limit:      limit,
		Cursor:     cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	page := &ProductPage{Products: products}
	if len(products) > limit {
		page.Products = products[:limit]
		last := page.Products[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id, !includeInactive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	category := &models.Category{
		Name:     strings.TrimSpace(input.Name),
		Slug:     normalizeSlug(input.Slug, input.Name),
		Position: input.Position,
	}
	if category.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	if err := s.repo.CreateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating category")
	}
	return category, nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	if category == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	category.Name = strings.TrimSpace(input.Name)
	category.Slug = normalizeSlug(input.Slug, input.Name)
	category.Position = input.Position
	if category.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating category")
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
	}
	if category == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	count, err := s.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting category products")
	}
	if count > 0 {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"category_id": id.String(),
			"products":    count,
		}), "category.delete.detaching_products")
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting category")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	existing, err := s.repo.GetProduct(ctx, id, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.GetProduct(ctx, id, false)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

// buildProduct validates references and assembles the model for a write.
func (s *service) buildProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive")
	}
	if input.SalePrice != nil && !input.SalePrice.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must be positive")
	}

	if input.CategoryID != nil {
		category, err := s.repo.GetCategory(ctx, *input.CategoryID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading category")
		}
		if category == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category does not exist")
		}
	}

	var addons []models.Addon
	if len(input.AddonIDs) > 0 {
		found, err := s.addons.GetByIDs(ctx, input.AddonIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading addons")
		}
		if len(found) != len(dedupeIDs(input.AddonIDs)) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "one or more addons do not exist")
		}
		addons = found
	}

	return &models.Product{
		Name:        name,
		Description: input.Description,
		BodyHTML:    input.BodyHTML,
		Price:       input.Price,
		SalePrice:   input.SalePrice,
		MainImage:   input.MainImage,
		Gallery:     pq.StringArray(input.Gallery),
		Features:    pq.StringArray(input.Features),
		CategoryID:  input.CategoryID,
		IsActive:    input.IsActive,
		Position:    input.Position,
		Addons:      addons,
	}, nil
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeSlug lowercases the explicit slug or derives one from the name.
func normalizeSlug(slug, name string) string {
	source := strings.TrimSpace(slug)
	if source == "" {
		source = name
	}
	out := slugInvalid.ReplaceAllString(strings.ToLower(source), "-")
	return strings.Trim(out, "-")
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
