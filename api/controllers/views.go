package controllers

import (
	"time"

	"github.com/aquasur/aquasur-backend/internal/cart"
	"github.com/aquasur/aquasur-backend/pkg/db/models"
	"github.com/aquasur/aquasur-backend/pkg/money"
)

// The view types below shape API responses; monetary fields are rendered as
// whole-peso strings.

type categoryView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int    `json:"position"`
}

type addonView struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	Name     string  `json:"name"`
	Price    string  `json:"price"`
	Required bool    `json:"required"`
	Image    *string `json:"image,omitempty"`
	IsActive bool    `json:"is_active"`
}

type productView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	BodyHTML    *string       `json:"body_html,omitempty"`
	Price       string        `json:"price"`
	SalePrice   *string       `json:"sale_price,omitempty"`
	MainImage   *string       `json:"main_image,omitempty"`
	Gallery     []string      `json:"gallery"`
	Features    []string      `json:"features"`
	Category    *categoryView `json:"category,omitempty"`
	Addons      []addonView   `json:"addons"`
	IsActive    bool          `json:"is_active"`
	Position    int           `json:"position"`
	CreatedAt   time.Time     `json:"created_at"`
}

type productPageView struct {
	Products   []productView `json:"products"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type cartAddonView struct {
	AddonID   string `json:"addon_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Required  bool   `json:"required"`
}

type cartLineView struct {
	LineID    string          `json:"line_id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice string          `json:"unit_price"`
	Image     *string         `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Addons    []cartAddonView `json:"addons"`
	LineTotal string          `json:"line_total"`
}

type cartView struct {
	Token          string         `json:"token"`
	Lines          []cartLineView `json:"lines"`
	Total          string         `json:"total"`
	TotalFormatted string         `json:"total_formatted"`
}

type quoteItemView struct {
	ProductID   *string         `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	UnitPrice   string          `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Addons      []cartAddonView `json:"addons"`
	LineTotal   string          `json:"line_total"`
}

type quoteView struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Address       *string         `json:"address,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Total         string          `json:"total"`
	Status        string          `json:"status"`
	DocumentURL   *string         `json:"document_url,omitempty"`
	Items         []quoteItemView `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

type quotePageView struct {
	Quotes     []quoteView `json:"quotes"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

type submitQuoteView struct {
	Quote       quoteView `json:"quote"`
	Message     string    `json:"message"`
	WhatsAppURL string    `json:"whatsapp_url"`
}

type contentEntryView struct {
	ID       string  `json:"id"`
	Key      string  `json:"key"`
	Title    *string `json:"title,omitempty"`
	BodyHTML string  `json:"body_html"`
	Image    *string `json:"image,omitempty"`
}

type settingView struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

type loginView struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	AdminID   string    `json:"admin_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
}

func toCategoryView(category models.Category) categoryView {
	return categoryView{
		ID:       category.ID.String(),
		Name:     category.Name,
		Slug:     category.Slug,
		Position: category.Position,
	}
}

func toCategoryViews(categories []models.Category) []categoryView {
	out := make([]categoryView, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryView(category))
	}
	return out
}

func toAddonView(addon models.Addon) addonView {
	return addonView{
		ID:       addon.ID.String(),
		Kind:     addon.Kind.String(),
		Name:     addon.Name,
		Price:    addon.Price.String(),
		Required: addon.Required,
		Image:    addon.Image,
		IsActive: addon.IsActive,
	}
}

func toAddonViews(addons []models.Addon) []addonView {
	out := make([]addonView, 0, len(addons))
	for _, addon := range addons {
		out = append(out, toAddonView(addon))
	}
	return out
}

func toProductView(product models.Product) productView {
	view := productView{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		BodyHTML:    product.BodyHTML,
		Price:       product.Price.String(),
		MainImage:   product.MainImage,
		Gallery:     product.Gallery,
		Features:    product.Features,
		Addons:      toAddonViews(product.Addons),
		IsActive:    product.IsActive,
		Position:    product.Position,
		CreatedAt:   product.CreatedAt,
	}
	if view.Gallery == nil {
		view.Gallery = []string{}
	}
	if view.Features == nil {
		view.Features = []string{}
	}
	if product.SalePrice != nil {
		sale := product.SalePrice.String()
		view.SalePrice = &sale
	}
	if product.Category != nil {
		category := toCategoryView(*product.Category)
		view.Category = &category
	}
	return view
}

func toProductViews(products []models.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, product := range products {
		out = append(out, toProductView(product))
	}
	return out
}

func toCartView(token string, c *cart.Cart) cartView {
	lines := make([]cartLineView, 0, len(c.Lines))
	for _, line := range c.Lines {
		addons := make([]cartAddonView, 0, len(line.Addons))
		for _, addon := range line.Addons {
			addons = append(addons, cartAddonView{
				AddonID:   addon.AddonID.String(),
				Name:      addon.Name,
				UnitPrice: addon.UnitPrice.String(),
				Quantity:  addon.Quantity,
				Required:  addon.Required,
			})
		}
		lines = append(lines, cartLineView{
			LineID:    line.LineID.String(),
			ProductID: line.Product.ProductID.String(),
			Name:      line.Product.Name,
			UnitPrice: line.Product.UnitPrice.String(),
			Image:     line.Product.Image,
			Quantity:  line.Quantity,
			Addons:    addons,
			LineTotal: cart.LineTotal(line).String(),
		})
	}
	total := c.Total()
	return cartView{
		Token:          token,
		Lines:          lines,
		Total:          total.String(),
		TotalFormatted: money.FormatCurrency(total),
	}
}

func toQuoteView(quote models.Quote) quoteView {
	items := make([]quoteItemView, 0, len(quote.Items))
	for _, item := range quote.Items {
		addons := make([]cartAddonView, 0, len(item.Addons))
		for _, addon := range item.Addons {
			view := cartAddonView{
				Name:      addon.Name,
				UnitPrice: addon.UnitPrice.String(),
				Quantity:  addon.Quantity,
				Required:  addon.Required,
			}
			if addon.AddonID != nil {
				view.AddonID = addon.AddonID.String()
			}
			addons = append(addons, view)
		}
		itemView := quoteItemView{
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity,
			Addons:      addons,
			LineTotal:   item.LineTotal.String(),
		}
		if item.ProductID != nil {
			id := item.ProductID.String()
			itemView.ProductID = &id
		}
		items = append(items, itemView)
	}
	return quoteView{
		ID:            quote.ID.String(),
		Number:        quote.Number,
		CustomerName:  quote.CustomerName,
		CustomerEmail: quote.CustomerEmail,
		CustomerPhone: quote.CustomerPhone,
		Address:       quote.Address,
		Notes:         quote.Notes,
		Total:         quote.TotalAmount.String(),
		Status:        quote.Status.String(),
		DocumentURL:   quote.DocumentURL,
		Items:         items,
		CreatedAt:     quote.CreatedAt,
	}
}

func toQuoteViews(quotes []models.Quote) []quoteView {
	out := make([]quoteView, 0, len(quotes))
	for _, quote := range quotes {
		out = append(out, toQuoteView(quote))
	}
	return out
}

func toContentEntryView(entry models.ContentEntry) contentEntryView {
	return contentEntryView{
		ID:       entry.ID.String(),
		Key:      entry.Key,
		Title:    entry.Title,
		BodyHTML: entry.BodyHTML,
		Image:    entry.Image,
	}
}

func toContentEntryViews(entries []models.ContentEntry) []contentEntryView {
	out := make([]contentEntryView, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toContentEntryView(entry))
	}
	return out
}

func toSettingView(setting models.Setting) settingView {
	return settingView{
		Key:   setting.Key,
		Type:  setting.Type.String(),
		Value: setting.Value,
	}
}

func toSettingViews(settings []models.Setting) []settingView {
	out := make([]settingView, 0, len(settings))
	for _, setting := range settings {
		out = append(out, toSettingView(setting))
	}
	return out
}
