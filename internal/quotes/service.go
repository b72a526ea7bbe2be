package quotes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/aquasur/aquasur-backend/internal/cart"
	"github.com/aquasur/aquasur-backend/pkg/config"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/enums"
	pkgerrors "github.com/aquasur/aquasur-backend/pkg/errors"
	"github.com/aquasur/aquasur-backend/pkg/logger"
	"github.com/aquasur/aquasur-backend/pkg/metrics"
	"github.com/aquasur/aquasur-backend/pkg/pagination"
	"github.com/aquasur/aquasur-backend/pkg/whatsapp"
)

// repository is the persistence surface the service depends on.
type repository interface {
	CreateWithItems(ctx context.Context, quote *models.Quote) error
	List(ctx context.Context, filter Filter) ([]models.Quote, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error
}

// cartStore reads and clears the cart snapshot behind a token.
type cartStore interface {
	Load(ctx context.Context, token string) (*cart.Cart, error)
	Delete(ctx context.Context, token string) error
}

// numberSource issues display numbers for new quotes.
type numberSource interface {
	Next(ctx context.Context) (string, error)
}

// DocumentLinker is an optional collaborator that renders a shareable document
// for a quote snapshot and returns its URL.
type DocumentLinker interface {
	LinkFor(ctx context.Context, quote *models.Quote) (string, error)
}

// Service drives quote submission and the admin review flow.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)

	List(ctx context.Context, input ListInput) (*Page, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next enums.QuoteStatus) (*models.Quote, error)
}

// SubmitInput carries the customer form plus the cart session token.
type SubmitInput struct {
	CartToken     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       *string
	Notes         *string
}

// SubmitResult is everything the storefront needs after a submission.
type SubmitResult struct {
	Quote       *models.Quote
	Message     string
	WhatsAppURL string
}

// ListInput filters and paginates the admin listing.
type ListInput struct {
	Status *enums.QuoteStatus
	Limit  int
	Cursor string
}

// Page is one page of quotes plus the cursor for the next one.
type Page struct {
	Quotes     []models.Quote
	NextCursor string
}

type service struct {
	repo    repository
	carts   cartStore
	numbers numberSource
	docs    DocumentLinker
	metrics *metrics.QuoteMetrics
	cfg     config.QuotesConfig
	logg    *logger.Logger
}

// NewService wires the quote service. docs and quoteMetrics may be nil.
func NewService(
	r repository,
	carts cartStore,
	numbers numberSource,
	docs DocumentLinker,
	quoteMetrics *metrics.QuoteMetrics,
	cfg config.QuotesConfig,
	logg *logger.Logger,
) (Service, error) {
	if r == nil {
		return nil, errors.New("quotes service: repository is required")
	}
	if carts == nil {
		return nil, errors.New("quotes service: cart store is required")
	}
	if numbers == nil {
		return nil, errors.New("quotes service: number source is required")
	}
	if logg == nil {
		return nil, errors.New("quotes service: logger is required")
	}
	return &service{
		repo:    r,
		carts:   carts,
		numbers: numbers,
		docs:    docs,
		metrics: quoteMetrics,
		cfg:     cfg,
		logg:    logg,
	}, nil
}

// Submit validates the request, persists header and line items atomically,
// clears the cart, and returns the composed handoff message. If the write
// fails the cart snapshot is left untouched.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if err := validateCustomer(input); err != nil {
		s.metrics.IncFailed("invalid_customer")
		return nil, err
	}

	snapshot, err := s.carts.Load(ctx, input.CartToken)
	if err != nil {
		s.metrics.IncFailed("cart_load")
		return nil, err
	}
	if snapshot.IsEmpty() {
		s.metrics.IncFailed("empty_cart")
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		s.metrics.IncFailed("number_generation")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating quote number")
	}

	quote := buildQuote(number, input, snapshot)

	if s.docs != nil {
		url, docErr := s.docs.LinkFor(ctx, quote)
		if docErr != nil {
			s.logg.Warn(s.logg.WithQuoteNumber(ctx, number), "quote.document.link_failed")
		} else if url != "" {
			quote.DocumentURL = &url
		}
	}

	if err := s.repo.CreateWithItems(ctx, quote); err != nil {
		s.metrics.IncFailed("persistence")
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting quote")
	}

	ctx = s.logg.WithQuoteNumber(ctx, number)
	if err := s.carts.Delete(ctx, input.CartToken); err != nil {
		// The quote is already persisted; a stale snapshot only expires later.
		s.logg.Warn(ctx, "quote.cart.clear_failed")
	}

	message := ComposeMessage(s.cfg.BusinessName, quote)
	link, err := whatsapp.BuildLink(s.cfg.WhatsAppBaseURL, message)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building whatsapp link")
	}

	s.metrics.IncSubmitted("whatsapp")
	s.metrics.ObserveTotal(quote.TotalAmount.InexactFloat64())
	s.logg.Info(ctx, "quote.submitted")

	return &SubmitResult{
		Quote:       quote,
		Message:     message,
		WhatsAppURL: link,
	}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*Page, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote status")
	}
	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	quotes, err := s.repo.List(ctx, Filter{
		Status: input.Status,
		Limit:  limit,
		Cursor: cursor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing quotes")
	}

	page := &Page{Quotes: quotes}
	if len(quotes) > limit {
		page.Quotes = quotes[:limit]
		last := page.Quotes[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return page, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	quote, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading quote")
	}
	if quote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
	}
	return quote, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, next enums.QuoteStatus) (*models.Quote, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid quote status")
	}

	quote, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !quote.Status.CanTransitionTo(next) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "quote status cannot transition").
			WithDetails(map[string]any{
				"from": quote.Status.String(),
				"to":   next.String(),
			})
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating quote status")
	}

	quote.Status = next
	s.logg.Info(s.logg.WithQuoteNumber(ctx, quote.Number), "quote.status.updated")
	return quote, nil
}

// validateCustomer enforces the presence contract before any persistence call.
func validateCustomer(input SubmitInput) error {
	missing := []string{}
	if strings.TrimSpace(input.CustomerName) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(input.CustomerEmail) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(input.CartToken) == "" {
		missing = append(missing, "cart_token")
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").
			WithDetails(map[string]any{"fields": missing})
	}
	return nil
}

// buildQuote snapshots the cart lines into persistable records.
func buildQuote(number string, input SubmitInput, snapshot *cart.Cart) *models.Quote {
	items := make([]models.QuoteItem, 0, len(snapshot.Lines))
	for i, line := range snapshot.Lines {
		addons := make([]models.QuoteItemAddon, 0, len(line.Addons))
		for _, addon := range line.Addons {
			id := addon.AddonID
			addons = append(addons, models.QuoteItemAddon{
				AddonID:   &id,
				Name:      addon.Name,
				UnitPrice: addon.UnitPrice,
				Quantity:  addon.Quantity,
				Required:  addon.Required,
			})
		}

		productID := line.Product.ProductID
		items = append(items, models.QuoteItem{
			ProductID:   &productID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.UnitPrice,
			Quantity:    line.Quantity,
			Addons:      addons,
			LineTotal:   cart.LineTotal(line),
			Position:    i,
		})
	}

	return &models.Quote{
		Number:        number,
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerEmail: strings.TrimSpace(input.CustomerEmail),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Address:       input.Address,
		Notes:         input.Notes,
		TotalAmount:   snapshot.Total(),
		Status:        enums.QuoteStatusPending,
		Items:         items,
	}
}
