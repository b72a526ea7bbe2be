package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteItemAddon snapshots one addon selection on a quote line, copied by
// value so later catalog edits cannot alter a submitted quote.
type QuoteItemAddon struct {
	AddonID   *uuid.UUID      `json:"addon_id,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Required  bool            `json:"required"`
}

// QuoteItem persists one cart line snapshot tied to a Quote.
type QuoteItem struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID     uuid.UUID        `gorm:"column:quote_id;type:uuid;not null"`
	ProductID   *uuid.UUID       `gorm:"column:product_id;type:uuid"`
	ProductName string           `gorm:"column:product_name;not null"`
	UnitPrice   decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity    int              `gorm:"column:quantity;not null"`
	Addons      []QuoteItemAddon `gorm:"column:addons;type:jsonb;serializer:json"`
	LineTotal   decimal.Decimal  `gorm:"column:line_total;type:numeric(12,2);not null"`
	Position    int              `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
}
