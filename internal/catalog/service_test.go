package catalog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasur/aquasur-backend/pkg/db/models"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/pagination"
)

type stubRepo struct {
	categories []models.Category
	products   []models.Product

	createdCategory *models.Category
	updatedCategory *models.Category
	deletedCategory *uuid.UUID
	productCount    int64

	createdProduct *models.Product
	updatedProduct *models.Product
	deletedProduct *uuid.UUID

	listFilter *ProductFilter
	err        error
}

func (s *stubRepo) ListCategories(context.Context) ([]models.Category, error) {
	return s.categories, s.err
}

func (s *stubRepo) GetCategory(_ context.Context, id uuid.UUID) (*models.Category, error) {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i], nil
		}
	}
	return nil, s.err
}

func (s *stubRepo) CreateCategory(_ context.Context, category *models.Category) error {
	s.createdCategory = category
	return s.err
}

func (s *stubRepo) UpdateCategory(_ context.Context, category *models.Category) error {
	s.updatedCategory = category
	return s.err
}

func (s *stubRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	s.deletedCategory = &id
	return s.err
}

func (s *stubRepo) CountProductsInCategory(context.Context, uuid.UUID) (int64, error) {
	return s.productCount, s.err
}

func (s *stubRepo) ListProducts(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	s.listFilter = &filter
	return s.products, s.err
}

func (s *stubRepo) GetProduct(_ context.Context, id uuid.UUID, _ bool) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, s.err
}

func (s *stubRepo) CreateProduct(_ context.Context, product *models.Product) error {
	s.createdProduct = product
	return s.err
}

func (s *stubRepo) UpdateProduct(_ context.Context, product *models.Product) error {
	s.updatedProduct = product
	return s.err
}

func (s *stubRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	s.deletedProduct = &id
	return s.err
}

type stubAddonLoader struct {
	addons []models.Addon
}

func (s *stubAddonLoader) GetByIDs(_ context.Context, ids []uuid.UUID) ([]models.Addon, error) {
	var out []models.Addon
	for _, id := range ids {
		for _, addon := range s.addons {
			if addon.ID == id {
				out = append(out, addon)
			}
		}
	}
	return out, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo *stubRepo, addons *stubAddonLoader) Service {
	t.Helper()
	if addons == nil {
		addons = &stubAddonLoader{}
	}
	svc, err := NewService(repo, addons, testLogger())
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, &stubAddonLoader{}, testLogger())
	assert.Error(t, err)

	_, err = NewService(&stubRepo{}, nil, testLogger())
	assert.Error(t, err)

	_, err = NewService(&stubRepo{}, &stubAddonLoader{}, nil)
	assert.Error(t, err)
}

func TestListProductsPaginates(t *testing.T) {
	t.Parallel()

	products := make([]models.Product, 3)
	base := time.Now().UTC()
	for i := range products {
		products[i] = models.Product{
			ID:        uuid.New(),
			Name:      "Piscina",
			Price:     decimal.NewFromInt(100),
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	repo := &stubRepo{products: products}
	svc := newTestService(t, repo, nil)

	page, err := svc.ListProducts(context.Background(), ListProductsInput{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Products, 2)
	require.NotEmpty(t, page.NextCursor)

	cursor, err := pagination.ParseCursor(page.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, page.Products[1].ID, cursor.ID)

	require.NotNil(t, repo.listFilter)
	assert.True(t, repo.listFilter.ActiveOnly)
}

func TestListProductsLastPageHasNoCursor(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{products: []models.Product{{ID: uuid.New(), CreatedAt: time.Now()}}}
	svc := newTestService(t, repo, nil)

	page, err := svc.ListProducts(context.Background(), ListProductsInput{Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.Empty(t, page.NextCursor)
}

func TestListProductsRejectsBadCursor(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, nil)

	_, err := svc.ListProducts(context.Background(), ListProductsInput{Cursor: "not-base64!!"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, nil)

	_, err := svc.GetProduct(context.Background(), uuid.New(), false)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestCreateCategoryDerivesSlug(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	svc := newTestService(t, repo, nil)

	category, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "Piscinas de Fibra"})
	require.NoError(t, err)
	assert.Equal(t, "piscinas-de-fibra", category.Slug)
	require.NotNil(t, repo.createdCategory)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, nil)

	_, err := svc.CreateCategory(context.Background(), CategoryInput{Name: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, nil)

	cases := []struct {
		name  string
		input ProductInput
	}{
		{"missing name", ProductInput{Price: decimal.NewFromInt(100)}},
		{"zero price", ProductInput{Name: "Piscina", Price: decimal.Zero}},
		{"negative price", ProductInput{Name: "Piscina", Price: decimal.NewFromInt(-5)}},
		{"unknown category", ProductInput{
			Name:       "Piscina",
			Price:      decimal.NewFromInt(100),
			CategoryID: ptr(uuid.New()),
		}},
		{"unknown addon", ProductInput{
			Name:     "Piscina",
			Price:    decimal.NewFromInt(100),
			AddonIDs: []uuid.UUID{uuid.New()},
		}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.CreateProduct(context.Background(), tc.input)
			require.Error(t, err)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
		})
	}
}

func TestCreateProductLinksAddons(t *testing.T) {
	t.Parallel()

	addon := models.Addon{ID: uuid.New(), Name: "Calefactor", Price: decimal.NewFromInt(350_000)}
	category := models.Category{ID: uuid.New(), Name: "Spas", Slug: "spas"}
	repo := &stubRepo{categories: []models.Category{category}}
	svc := newTestService(t, repo, &stubAddonLoader{addons: []models.Addon{addon}})

	product, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:       "Spa Premium",
		Price:      decimal.NewFromInt(2_500_000),
		CategoryID: &category.ID,
		AddonIDs:   []uuid.UUID{addon.ID},
		IsActive:   true,
	})
	require.NoError(t, err)
	require.Len(t, product.Addons, 1)
	assert.Equal(t, addon.ID, product.Addons[0].ID)
	require.NotNil(t, repo.createdProduct)
}

func TestUpdateProductNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, nil)

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), ProductInput{
		Name:  "Piscina",
		Price: decimal.NewFromInt(100),
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	product := models.Product{ID: uuid.New(), Name: "Piscina"}
	repo := &stubRepo{products: []models.Product{product}}
	svc := newTestService(t, repo, nil)

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))
	require.NotNil(t, repo.deletedProduct)
	assert.Equal(t, product.ID, *repo.deletedProduct)
}

func ptr[T any](v T) *T {
	return &v
}
