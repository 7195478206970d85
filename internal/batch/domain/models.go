package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Batch is one purchased stock lot of a drug. PurchasePrice is per pack;
// UnitsPerPack converts it to a base-unit cost for partial sales. Quantity is
// tracked in base units.
type Batch struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	StoreID       snowflake.ID    `json:"store_id" gorm:"not null;index"`
	DrugID        snowflake.ID    `json:"drug_id" gorm:"not null;index"`
	BatchNo       string          `json:"batch_no" gorm:"type:text;not null"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	PurchasePrice decimal.Decimal `json:"purchase_price" gorm:"type:numeric(18,6);not null"`
	MRP           decimal.Decimal `json:"mrp" gorm:"type:numeric(18,6);not null"`
	UnitsPerPack  int64           `json:"units_per_pack" gorm:"not null;default:1"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"type:numeric(18,6);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Batch) TableName() string { return "batches" }

// BaseUnitsPerPack returns the conversion with the indivisible-pack fallback
// applied, so callers never divide by zero.
func (b *Batch) BaseUnitsPerPack() int64 {
	if b.UnitsPerPack <= 0 {
		return 1
	}
	return b.UnitsPerPack
}

var (
	ErrInvalidStore   = errors.New("invalid_store")
	ErrInvalidDrug    = errors.New("invalid_drug")
	ErrInvalidBatchNo = errors.New("invalid_batch_no")
	ErrInvalidPrice   = errors.New("invalid_purchase_price")
	ErrNotFound       = errors.New("batch_not_found")
)
