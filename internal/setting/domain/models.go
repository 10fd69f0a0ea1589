package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// UserSettings is the per-user settings document, stored as one JSON blob
// keyed by user.
type UserSettings struct {
	UserID    snowflake.ID      `gorm:"primaryKey" json:"userId"`
	Values    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"values"`
	UpdatedAt time.Time         `gorm:"not null" json:"updatedAt"`
}

// TableName sets the database table name.
func (UserSettings) TableName() string { return "user_settings" }
