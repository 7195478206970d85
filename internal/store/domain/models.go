package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Store is one pharmacy outlet. Reporting rolls margin up per store.
type Store struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Code      string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	Timezone  string       `json:"timezone" gorm:"type:text;not null;default:'UTC'"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Store) TableName() string { return "stores" }
