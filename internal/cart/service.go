package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/aquasur/aquasur-backend/pkg/db/models"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

// productGetter resolves active catalog products with their attached addons.
type productGetter interface {
	GetProduct(ctx context.Context, id uuid.UUID, activeOnly bool) (*models.Product, error)
}

// snapshotStore persists cart snapshots behind opaque tokens.
type snapshotStore interface {
	MintToken() string
	Load(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, token string, c *Cart) error
	Delete(ctx context.Context, token string) error
}

// Service exposes the session cart operations to the HTTP layer.
type Service interface {
	Get(ctx context.Context, token string) (string, *Cart, error)
	AddItem(ctx context.Context, token string, input AddItemInput) (string, *Cart, error)
	UpdateLine(ctx context.Context, token string, lineID uuid.UUID, quantity int) (*Cart, error)
	RemoveLine(ctx context.Context, token string, lineID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

// AddonChoice is one requested addon on an add-to-cart call.
type AddonChoice struct {
	AddonID  uuid.UUID
	Quantity int
}

// AddItemInput identifies the product and addon selection to add.
type AddItemInput struct {
	ProductID uuid.UUID
	Addons    []AddonChoice
}

type service struct {
	store    snapshotStore
	products productGetter
	logg     *logger.Logger
}

// NewService wires the cart service.
func NewService(store snapshotStore, products productGetter, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, errors.New("cart service: store is required")
	}
	if products == nil {
		return nil, errors.New("cart service: product getter is required")
	}
	if logg == nil {
		return nil, errors.New("cart service: logger is required")
	}
	return &service{store: store, products: products, logg: logg}, nil
}

// Get returns the cart behind token, minting a token when none is supplied.
func (s *service) Get(ctx context.Context, token string) (string, *Cart, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return s.store.MintToken(), New(), nil
	}
	c, err := s.store.Load(ctx, token)
	if err != nil {
		return "", nil, err
	}
	return token, c, nil
}

// AddItem resolves the product, validates the addon selection against the
// product's attached addons, forces required ones in, and saves the snapshot.
func (s *service) AddItem(ctx context.Context, token string, input AddItemInput) (string, *Cart, error) {
	token, c, err := s.Get(ctx, token)
	if err != nil {
		return "", nil, err
	}

	product, err := s.products.GetProduct(ctx, input.ProductID, true)
	if err != nil {
		return "", nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product == nil {
		return "", nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	selections, err := resolveAddons(product, input.Addons)
	if err != nil {
		return "", nil, err
	}

	c.AddItem(ProductSnapshot{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.EffectivePrice(),
		Image:     product.MainImage,
	}, selections)

	if err := s.store.Save(ctx, token, c); err != nil {
		return "", nil, err
	}
	return token, c, nil
}

// UpdateLine sets a line quantity and saves the snapshot.
func (s *service) UpdateLine(ctx context.Context, token string, lineID uuid.UUID, quantity int) (*Cart, error) {
	c, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, ok := c.UpdateQuantity(lineID, quantity); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	if err := s.store.Save(ctx, token, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveLine drops a line and saves the snapshot.
func (s *service) RemoveLine(ctx context.Context, token string, lineID uuid.UUID) (*Cart, error) {
	c, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	if !c.RemoveLine(lineID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	if err := s.store.Save(ctx, token, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear drops the whole snapshot.
func (s *service) Clear(ctx context.Context, token string) error {
	return s.store.Delete(ctx, strings.TrimSpace(token))
}

// resolveAddons maps requested addon ids onto the product's attached addons
// and appends any required addon the caller left out.
func resolveAddons(product *models.Product, choices []AddonChoice) ([]AddonSelection, error) {
	attached := make(map[uuid.UUID]models.Addon, len(product.Addons))
	for _, addon := range product.Addons {
		attached[addon.ID] = addon
	}

	selections := make([]AddonSelection, 0, len(choices))
	chosen := make(map[uuid.UUID]struct{}, len(choices))
	for _, choice := range choices {
		addon, ok := attached[choice.AddonID]
		if !ok || !addon.IsActive {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "addon not available for this product").
				WithDetails(map[string]any{"addon_id": choice.AddonID.String()})
		}
		chosen[choice.AddonID] = struct{}{}
		selections = append(selections, AddonSelection{
			AddonID:   addon.ID,
			Name:      addon.Name,
			UnitPrice: addon.Price,
			Quantity:  choice.Quantity,
			Required:  addon.Required,
		})
	}

	for _, addon := range product.Addons {
		if !addon.Required || !addon.IsActive {
			continue
		}
		if _, ok := chosen[addon.ID]; ok {
			continue
		}
		selections = append(selections, AddonSelection{
			AddonID:   addon.ID,
			Name:      addon.Name,
			UnitPrice: addon.Price,
			Quantity:  1,
			Required:  true,
		})
	}

	return selections, nil
}
