package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Drug is a catalog entry. PackUnit/BaseUnit name the two denominations a
// quantity can be sold in (e.g. strip/tablet); UnitsPerPack is the default
// conversion for new batches.
type Drug struct {
	ID           snowflake.ID    `json:"id" gorm:"primaryKey"`
	StoreID      snowflake.ID    `json:"store_id" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"type:text;not null"`
	GenericName  string          `json:"generic_name" gorm:"type:text"`
	Manufacturer string          `json:"manufacturer" gorm:"type:text"`
	HSNCode      string          `json:"hsn_code" gorm:"type:text"`
	GSTRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric(6,3);not null;default:0"`
	PackUnit     string          `json:"pack_unit" gorm:"type:text;not null;default:'pack'"`
	BaseUnit     string          `json:"base_unit" gorm:"type:text;not null;default:'unit'"`
	UnitsPerPack int64           `json:"units_per_pack" gorm:"not null;default:1"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Drug) TableName() string { return "drugs" }

var (
	ErrInvalidStore = errors.New("invalid_store")
	ErrInvalidName  = errors.New("invalid_name")
	ErrNotFound     = errors.New("drug_not_found")
)
