package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/aquasur/aquasur-backend/pkg/enums"
)

// Quote is the persisted header for a customer quote request. Once created it
// is append-only except for status transitions performed by an administrator.
type Quote struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Number        string            `gorm:"column:number;not null;uniqueIndex"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	CustomerEmail string            `gorm:"column:customer_email;not null"`
	CustomerPhone string            `gorm:"column:customer_phone;not null"`
	Address       *string           `gorm:"column:address"`
	Notes         *string           `gorm:"column:notes"`
	TotalAmount   decimal.Decimal   `gorm:"column:total_amount;type:numeric(12,2);not null"`
	Status        enums.QuoteStatus `gorm:"column:status;not null;default:'pending'"`
	DocumentURL   *string           `gorm:"column:document_url"`
	Items         []QuoteItem       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
