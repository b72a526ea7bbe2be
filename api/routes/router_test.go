package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aquasur/aquasur-backend/internal/addons"
	authsvc "github.com/aquasur/aquasur-backend/internal/auth"
	"github.com/aquasur/aquasur-backend/internal/cart"
	"github.com/aquasur/aquasur-backend/internal/catalog"
	"github.com/aquasur/aquasur-backend/internal/content"
	"github.com/aquasur/aquasur-backend/internal/quotes"
	pkgAuth "github.com/aquasur/aquasur-backend/pkg/auth"
	"github.com/aquasur/aquasur-backend/pkg/config"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, email, password string) (*authsvc.LoginResult, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubCatalogService struct{}

func (stubCatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{}, nil
}

func (stubCatalogService) ListProducts(ctx context.Context, input catalog.ListProductsInput) (*catalog.ProductPage, error) {
	return &catalog.ProductPage{}, nil
}

// GetProduct implements [catalog.Service].
func (stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	panic("unimplemented")
}

// CreateCategory implements [catalog.Service].
func (stubCatalogService) CreateCategory(ctx context.Context, input catalog.CategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

// UpdateCategory implements [catalog.Service].
func (stubCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input catalog.CategoryInput) (*models.Category, error) {
	panic("unimplemented")
}

// DeleteCategory implements [catalog.Service].
func (stubCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

// CreateProduct implements [catalog.Service].
func (stubCatalogService) CreateProduct(ctx context.Context, input catalog.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

// UpdateProduct implements [catalog.Service].
func (stubCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalog.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

// DeleteProduct implements [catalog.Service].
func (stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubAddonService struct{}

func (stubAddonService) List(ctx context.Context, kind *enums.AddonKind, includeInactive bool) ([]models.Addon, error) {
	return []models.Addon{}, nil
}

// Get implements [addons.Service].
func (stubAddonService) Get(ctx context.Context, id uuid.UUID) (*models.Addon, error) {
	panic("unimplemented")
}

// Create implements [addons.Service].
func (stubAddonService) Create(ctx context.Context, input addons.Input) (*models.Addon, error) {
	panic("unimplemented")
}

// Update implements [addons.Service].
func (stubAddonService) Update(ctx context.Context, id uuid.UUID, input addons.Input) (*models.Addon, error) {
	panic("unimplemented")
}

// Delete implements [addons.Service].
func (stubAddonService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, token string) (string, *cart.Cart, error) {
	if token == "" {
		token = uuid.NewString()
	}
	return token, &cart.Cart{}, nil
}

// AddItem implements [cart.Service].
func (stubCartService) AddItem(ctx context.Context, token string, input cart.AddItemInput) (string, *cart.Cart, error) {
	panic("unimplemented")
}

// UpdateLine implements [cart.Service].
func (stubCartService) UpdateLine(ctx context.Context, token string, lineID uuid.UUID, quantity int) (*cart.Cart, error) {
	panic("unimplemented")
}

// RemoveLine implements [cart.Service].
func (stubCartService) RemoveLine(ctx context.Context, token string, lineID uuid.UUID) (*cart.Cart, error) {
	panic("unimplemented")
}

// Clear implements [cart.Service].
func (stubCartService) Clear(ctx context.Context, token string) error {
	panic("unimplemented")
}

type stubContentService struct{}

// ListEntries implements [content.Service].
func (stubContentService) ListEntries(ctx context.Context) ([]models.ContentEntry, error) {
	return []models.ContentEntry{}, nil
}

// GetEntryByKey implements [content.Service].
func (stubContentService) GetEntryByKey(ctx context.Context, key string) (*models.ContentEntry, error) {
	panic("unimplemented")
}

// CreateEntry implements [content.Service].
func (stubContentService) CreateEntry(ctx context.Context, input content.EntryInput) (*models.ContentEntry, error) {
	panic("unimplemented")
}

// UpdateEntry implements [content.Service].
func (stubContentService) UpdateEntry(ctx context.Context, id uuid.UUID, input content.EntryInput) (*models.ContentEntry, error) {
	panic("unimplemented")
}

// DeleteEntry implements [content.Service].
func (stubContentService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

// ListSettings implements [content.Service].
func (stubContentService) ListSettings(ctx context.Context) ([]models.Setting, error) {
	return []models.Setting{}, nil
}

// PutSetting implements [content.Service].
func (stubContentService) PutSetting(ctx context.Context, input content.SettingInput) (*models.Setting, error) {
	panic("unimplemented")
}

// DeleteSetting implements [content.Service].
func (stubContentService) DeleteSetting(ctx context.Context, key string) error {
	panic("unimplemented")
}

type stubQuoteService struct {
	listFn func(ctx context.Context, input quotes.ListInput) (*quotes.Page, error)
}

// Submit implements [quotes.Service].
func (stubQuoteService) Submit(ctx context.Context, input quotes.SubmitInput) (*quotes.SubmitResult, error) {
	panic("unimplemented")
}

func (s stubQuoteService) List(ctx context.Context, input quotes.ListInput) (*quotes.Page, error) {
	if s.listFn != nil {
		return s.listFn(ctx, input)
	}
	return &quotes.Page{}, nil
}

// Get implements [quotes.Service].
func (stubQuoteService) Get(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	panic("unimplemented")
}

// UpdateStatus implements [quotes.Service].
func (stubQuoteService) UpdateStatus(ctx context.Context, id uuid.UUID, next enums.QuoteStatus) (*models.Quote, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		nil,
		Services{
			Auth:    stubAuthService{},
			Catalog: stubCatalogService{},
			Addons:  stubAddonService{},
			Cart:    stubCartService{},
			Content: stubContentService{},
			Quotes:  stubQuoteService{},
		},
	)
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public categories got %d", resp.Code)
	}
}

func TestCartGetEchoesSessionToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for cart get got %d", resp.Code)
	}
	if resp.Header().Get("X-Cart-Token") == "" {
		t.Fatal("expected X-Cart-Token header on cart response")
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/quotes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupRejectsNonAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, "viewer"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin got %d", resp.Code)
	}
}

func TestAdminGroupAcceptsAdminToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/quotes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, pkgAuth.RoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin quotes got %d", resp.Code)
	}
}

func TestAdminTokenFromOtherSecretRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	other := testConfig()
	other.JWT.Secret = "not-the-secret"
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, other, pkgAuth.RoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign token got %d", resp.Code)
	}
}

func TestSubmitQuoteRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func buildToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		AdminID: uuid.New(),
		Email:   "admin@example.com",
		Role:    role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}
