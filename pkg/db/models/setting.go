package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/aquasur/aquasur-backend/pkg/enums"
)

// Setting is a typed key/value pair; Value is validated against Type at the
// service boundary before it is written.
type Setting struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Key       string            `gorm:"column:key;not null;uniqueIndex"`
	Type      enums.SettingType `gorm:"column:type;not null"`
	Value     string            `gorm:"column:value;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
