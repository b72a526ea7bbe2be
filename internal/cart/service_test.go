package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasur/aquasur-backend/pkg/db/models"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/money"
)

type memoryStore struct {
	carts  map[string]*Cart
	minted int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string]*Cart{}}
}

func (m *memoryStore) MintToken() string {
	m.minted++
	return uuid.NewString()
}

func (m *memoryStore) Load(_ context.Context, token string) (*Cart, error) {
	if c, ok := m.carts[token]; ok {
		return c, nil
	}
	return New(), nil
}

func (m *memoryStore) Save(_ context.Context, token string, c *Cart) error {
	m.carts[token] = c
	return nil
}

func (m *memoryStore) Delete(_ context.Context, token string) error {
	delete(m.carts, token)
	return nil
}

type stubProducts struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubProducts) GetProduct(_ context.Context, id uuid.UUID, _ bool) (*models.Product, error) {
	return s.products[id], nil
}

func productWithAddons(addons ...models.Addon) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     "Piscina Familiar",
		Price:    money.FromInt(900_000),
		IsActive: true,
		Addons:   addons,
	}
}

func newCartService(t *testing.T, store *memoryStore, products *stubProducts) Service {
	t.Helper()
	svc, err := NewService(store, products, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	require.NoError(t, err)
	return svc
}

func TestGetMintsTokenForNewSession(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{})

	token, c, err := svc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, store.minted)
}

func TestAddItemPersistsSnapshot(t *testing.T) {
	t.Parallel()

	product := productWithAddons()
	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	token, c, err := svc.AddItem(context.Background(), "", AddItemInput{ProductID: product.ID})
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)

	_, reloaded, err := svc.Get(context.Background(), token)
	require.NoError(t, err)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, "900000", reloaded.Total().String())
}

func TestAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc := newCartService(t, newMemoryStore(), &stubProducts{})

	_, _, err := svc.AddItem(context.Background(), "", AddItemInput{ProductID: uuid.New()})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAddItemRejectsForeignAddon(t *testing.T) {
	t.Parallel()

	product := productWithAddons()
	svc := newCartService(t, newMemoryStore(), &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, _, err := svc.AddItem(context.Background(), "", AddItemInput{
		ProductID: product.ID,
		Addons:    []AddonChoice{{AddonID: uuid.New(), Quantity: 1}},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestAddItemForcesRequiredAddons(t *testing.T) {
	t.Parallel()

	required := models.Addon{ID: uuid.New(), Name: "Filtro", Price: money.FromInt(120_000), Required: true, IsActive: true}
	optional := models.Addon{ID: uuid.New(), Name: "Cobertor", Price: money.FromInt(45_000), IsActive: true}
	product := productWithAddons(required, optional)
	svc := newCartService(t, newMemoryStore(), &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, c, err := svc.AddItem(context.Background(), "", AddItemInput{
		ProductID: product.ID,
		Addons:    []AddonChoice{{AddonID: optional.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	require.Len(t, c.Lines[0].Addons, 2)

	names := []string{c.Lines[0].Addons[0].Name, c.Lines[0].Addons[1].Name}
	assert.Contains(t, names, "Filtro")
	assert.Contains(t, names, "Cobertor")
}

func TestAddItemUsesSalePrice(t *testing.T) {
	t.Parallel()

	sale := money.FromInt(750_000)
	product := productWithAddons()
	product.SalePrice = &sale
	svc := newCartService(t, newMemoryStore(), &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	_, c, err := svc.AddItem(context.Background(), "", AddItemInput{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, "750000", c.Total().String())
}

func TestUpdateLineUnknownLine(t *testing.T) {
	t.Parallel()

	svc := newCartService(t, newMemoryStore(), &stubProducts{})

	_, err := svc.UpdateLine(context.Background(), "tok", uuid.New(), 2)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRemoveLineAndClearSnapshot(t *testing.T) {
	t.Parallel()

	product := productWithAddons()
	store := newMemoryStore()
	svc := newCartService(t, store, &stubProducts{products: map[uuid.UUID]*models.Product{product.ID: product}})

	token, c, err := svc.AddItem(context.Background(), "", AddItemInput{ProductID: product.ID})
	require.NoError(t, err)

	c, err = svc.RemoveLine(context.Background(), token, c.Lines[0].LineID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	require.NoError(t, svc.Clear(context.Background(), token))
	_, ok := store.carts[token]
	assert.False(t, ok)
}
