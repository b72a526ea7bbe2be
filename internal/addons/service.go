package addons

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
)

// repository is the persistence surface the service depends on.
type repository interface {
	List(ctx context.Context, filter Filter) ([]models.Addon, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Addon, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Addon, error)
	Create(ctx context.Context, addon *models.Addon) error
	Update(ctx context.Context, addon *models.Addon) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service manages the equipment and accessory catalog.
type Service interface {
	List(ctx context.Context, kind *enums.AddonKind, includeInactive bool) ([]models.Addon, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Addon, error)
	Create(ctx context.Context, input Input) (*models.Addon, error)
	Update(ctx context.Context, id uuid.UUID, input Input) (*models.Addon, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Input carries admin addon writes.
type Input struct {
	Kind     enums.AddonKind
	Name     string
	Price    decimal.Decimal
	Required bool
	Image    *string
	IsActive bool
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService wires the addon service.
func NewService(r repository, logg *logger.Logger) (Service, error) {
	if r == nil {
		return nil, errors.New("addons service: repository is required")
	}
	if logg == nil {
		return nil, errors.New("addons service: logger is required")
	}
	return &service{repo: r, logg: logg}, nil
}

func (s *service) List(ctx context.Context, kind *enums.AddonKind, includeInactive bool) ([]models.Addon, error) {
	if kind != nil && !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid addon kind")
	}
	addons, err := s.repo.List(ctx, Filter{Kind: kind, ActiveOnly: !includeInactive})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing addons")
	}
	return addons, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Addon, error) {
	addon, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading addon")
	}
	if addon == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
	}
	return addon, nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Addon, error) {
	addon, err := buildAddon(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, addon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating addon")
	}
	return addon, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input Input) (*models.Addon, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading addon")
	}
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
	}

	addon, err := buildAddon(input)
	if err != nil {
		return nil, err
	}
	addon.ID = id

	if err := s.repo.Update(ctx, addon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating addon")
	}
	return addon, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading addon")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "addon not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting addon")
	}
	return nil
}

func buildAddon(input Input) (*models.Addon, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "addon name is required")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid addon kind")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "addon price cannot be negative")
	}

	return &models.Addon{
		Kind:     input.Kind,
		Name:     name,
		Price:    input.Price,
		Required: input.Required,
		Image:    input.Image,
		IsActive: input.IsActive,
	}, nil
}
