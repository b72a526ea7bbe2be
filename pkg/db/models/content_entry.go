package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentEntry stores editable site copy keyed by section.
type ContentEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Key       string    `gorm:"column:key;not null;uniqueIndex"`
	Title     *string   `gorm:"column:title"`
	BodyHTML  string    `gorm:"column:body_html;not null"`
	Image     *string   `gorm:"column:image"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
