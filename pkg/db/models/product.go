package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing (pool, spa, or related product).
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string           `gorm:"column:name;not null"`
	Description *string          `gorm:"column:description"`
	BodyHTML    *string          `gorm:"column:body_html"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	SalePrice   *decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2)"`
	MainImage   *string          `gorm:"column:main_image"`
	Gallery     pq.StringArray   `gorm:"column:gallery;type:text[];not null;default:ARRAY[]::text[]"`
	Features    pq.StringArray   `gorm:"column:features;type:text[];not null;default:ARRAY[]::text[]"`
	CategoryID  *uuid.UUID       `gorm:"column:category_id;type:uuid"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	Position    int              `gorm:"column:position;not null;default:0"`
	Addons      []Addon          `gorm:"many2many:product_addons"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectivePrice returns the sale price when one is set, otherwise the list price.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.IsPositive() {
		return *p.SalePrice
	}
	return p.Price
}
