package quotes

import (
	"context"
	"errors"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasur/aquasur-backend/internal/cart"
	"github.com/aquasur/aquasur-backend/pkg/config"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/money"
)

type stubRepo struct {
	quotes []models.Quote

	created      *models.Quote
	createErr    error
	updatedID    *uuid.UUID
	updatedState enums.QuoteStatus
	lastFilter   *Filter
}

func (s *stubRepo) CreateWithItems(_ context.Context, quote *models.Quote) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = quote
	return nil
}

func (s *stubRepo) List(_ context.Context, filter Filter) ([]models.Quote, error) {
	s.lastFilter = &filter
	return s.quotes, nil
}

func (s *stubRepo) Get(_ context.Context, id uuid.UUID) (*models.Quote, error) {
	for i := range s.quotes {
		if s.quotes[i].ID == id {
			return &s.quotes[i], nil
		}
	}
	return nil, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	s.updatedID = &id
	s.updatedState = status
	return nil
}

type stubCartStore struct {
	carts   map[string]*cart.Cart
	deleted []string
	loadErr error
}

func (s *stubCartStore) Load(_ context.Context, token string) (*cart.Cart, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if c, ok := s.carts[token]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (s *stubCartStore) Delete(_ context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	return nil
}

type stubNumbers struct {
	number string
	err    error
}

func (s *stubNumbers) Next(context.Context) (string, error) {
	return s.number, s.err
}

type stubDocs struct {
	url string
	err error
}

func (s *stubDocs) LinkFor(context.Context, *models.Quote) (string, error) {
	return s.url, s.err
}

func testConfig() config.QuotesConfig {
	return config.QuotesConfig{
		NumberPrefix:    "COT",
		WhatsAppBaseURL: "https://wa.me/56912345678",
		BusinessName:    "AquaSur Piscinas y Spas",
	}
}

func newTestService(t *testing.T, repo *stubRepo, carts *stubCartStore, docs DocumentLinker) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, carts, &stubNumbers{number: "COT-20260828-0001"}, docs, nil, testConfig(), logg)
	require.NoError(t, err)
	return svc
}

// twoProductCart builds a cart totaling 2600: product A 1000 x 2, product B
// 500 x 1 with a required 100-peso addon.
func twoProductCart() *cart.Cart {
	c := cart.New()
	line := c.AddItem(cart.ProductSnapshot{
		ProductID: uuid.New(),
		Name:      "Piscina Estandar",
		UnitPrice: money.FromInt(1_000),
	}, nil)
	c.UpdateQuantity(line.LineID, 2)

	c.AddItem(cart.ProductSnapshot{
		ProductID: uuid.New(),
		Name:      "Piscina Compacta",
		UnitPrice: money.FromInt(500),
	}, []cart.AddonSelection{
		{AddonID: uuid.New(), Name: "Filtro", UnitPrice: money.FromInt(100), Quantity: 1, Required: true},
	})
	return c
}

func validSubmit(token string) SubmitInput {
	return SubmitInput{
		CartToken:     token,
		CustomerName:  "María González",
		CustomerEmail: "maria@example.cl",
		CustomerPhone: "+56 9 1234 5678",
	}
}

func TestSubmitPersistsHeaderAndItems(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	carts := &stubCartStore{carts: map[string]*cart.Cart{"tok": twoProductCart()}}
	svc := newTestService(t, repo, carts, nil)

	result, err := svc.Submit(context.Background(), validSubmit("tok"))
	require.NoError(t, err)

	require.NotNil(t, repo.created)
	assert.Equal(t, "2600", repo.created.TotalAmount.String())
	assert.Equal(t, enums.QuoteStatusPending, repo.created.Status)
	require.Len(t, repo.created.Items, 2)
	assert.Equal(t, 0, repo.created.Items[0].Position)
	assert.Equal(t, 1, repo.created.Items[1].Position)
	require.Len(t, repo.created.Items[1].Addons, 1)
	assert.Equal(t, "Filtro", repo.created.Items[1].Addons[0].Name)

	assert.Equal(t, []string{"tok"}, carts.deleted)

	assert.Contains(t, result.Message, "2.600")
	assert.Contains(t, result.Message, "Piscina Estandar")
	assert.Contains(t, result.Message, "Piscina Compacta")
}

func TestSubmitWhatsAppLinkPreservesMessage(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	carts := &stubCartStore{carts: map[string]*cart.Cart{"tok": twoProductCart()}}
	svc := newTestService(t, repo, carts, nil)

	result, err := svc.Submit(context.Background(), validSubmit("tok"))
	require.NoError(t, err)

	parsed, err := url.Parse(result.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, result.Message, parsed.Query().Get("text"))
}

func TestSubmitEmptyCartRejectedBeforePersistence(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	carts := &stubCartStore{carts: map[string]*cart.Cart{}}
	svc := newTestService(t, repo, carts, nil)

	_, err := svc.Submit(context.Background(), validSubmit("tok"))
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Nil(t, repo.created)
	assert.Empty(t, carts.deleted)
}

func TestSubmitMissingCustomerFieldsRejected(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	carts := &stubCartStore{carts: map[string]*cart.Cart{"tok": twoProductCart()}}
	svc := newTestService(t, repo, carts, nil)

	input := validSubmit("tok")
	input.CustomerEmail = "   "

	_, err := svc.Submit(context.Background(), input)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Nil(t, repo.created)
}

func TestSubmitPersistenceFailureLeavesCartIntact(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{createErr: errors.New("connection reset")}
	carts := &stubCartStore{carts: map[string]*cart.Cart{"tok": twoProductCart()}}
	svc := newTestService(t, repo, carts, nil)

	_, err := svc.Submit(context.Background(), validSubmit("tok"))
	require.Error(t, err)
	assert.Empty(t, carts.deleted)

	snapshot, loadErr := carts.Load(context.Background(), "tok")
	require.NoError(t, loadErr)
	assert.Equal(t, "2600", snapshot.Total().String())
}

func TestSubmitEmbedsDocumentLink(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	carts := &stubCartStore{carts: map[string]*cart.Cart{"tok": twoProductCart()}}
	docs := &stubDocs{url: "https://docs.aquasur.cl/q/1.pdf"}
	svc := newTestService(t, repo, carts, docs)

	result, err := svc.Submit(context.Background(), validSubmit("tok"))
	require.NoError(t, err)
	require.NotNil(t, repo.created.DocumentURL)
	assert.Contains(t, result.Message, "Documento: https://docs.aquasur.cl/q/1.pdf")
}

func TestSubmitDocumentFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	carts := &stubCartStore{carts: map[string]*cart.Cart{"tok": twoProductCart()}}
	docs := &stubDocs{err: errors.New("renderer down")}
	svc := newTestService(t, repo, carts, docs)

	result, err := svc.Submit(context.Background(), validSubmit("tok"))
	require.NoError(t, err)
	assert.Nil(t, repo.created.DocumentURL)
	assert.NotContains(t, result.Message, "Documento:")
}

func TestUpdateStatusTransitions(t *testing.T) {
	t.Parallel()

	pending := models.Quote{ID: uuid.New(), Number: "COT-1", Status: enums.QuoteStatusPending}
	approved := models.Quote{ID: uuid.New(), Number: "COT-2", Status: enums.QuoteStatusApproved}
	repo := &stubRepo{quotes: []models.Quote{pending, approved}}
	svc := newTestService(t, repo, &stubCartStore{}, nil)

	updated, err := svc.UpdateStatus(context.Background(), pending.ID, enums.QuoteStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, enums.QuoteStatusApproved, updated.Status)
	require.NotNil(t, repo.updatedID)
	assert.Equal(t, pending.ID, *repo.updatedID)

	_, err = svc.UpdateStatus(context.Background(), approved.ID, enums.QuoteStatusRejected)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestUpdateStatusUnknownQuote(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubRepo{}, &stubCartStore{}, nil)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.QuoteStatusApproved)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListFiltersByStatus(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{quotes: []models.Quote{
		{ID: uuid.New(), Status: enums.QuoteStatusPending, CreatedAt: time.Now()},
	}}
	svc := newTestService(t, repo, &stubCartStore{}, nil)

	status := enums.QuoteStatusPending
	page, err := svc.List(context.Background(), ListInput{Status: &status, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Quotes, 1)
	assert.Empty(t, page.NextCursor)
	require.NotNil(t, repo.lastFilter)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, enums.QuoteStatusPending, *repo.lastFilter.Status)
}
