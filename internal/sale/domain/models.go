package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a POS sale.
type SaleStatus string

const (
	SaleStatusDraft     SaleStatus = "draft"
	SaleStatusCompleted SaleStatus = "completed"
)

// Sale is one POS invoice.
type Sale struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	StoreID     snowflake.ID    `json:"store_id" gorm:"not null;index"`
	Status      SaleStatus      `json:"status" gorm:"type:text;not null;default:'draft'"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(18,6);not null"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:numeric(18,6);not null"`
	FinalizedAt *time.Time      `json:"finalized_at" gorm:"index"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Items []SaleItem `json:"items" gorm:"-"`
}

// TableName sets the database table name.
func (Sale) TableName() string { return "sales" }

// SaleItem is one line of a sale. BatchID is nil for non-stock lines
// (services, rounding adjustments); those lines never reach the margin
// ledger. IsPartial marks a base-unit (loose tablet) sale against a
// multi-unit pack; otherwise Quantity is in pack units.
type SaleItem struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	SaleID        snowflake.ID    `json:"sale_id" gorm:"not null;index"`
	DrugID        snowflake.ID    `json:"drug_id" gorm:"not null"`
	BatchID       *snowflake.ID   `json:"batch_id"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"type:numeric(18,6);not null"`
	IsPartial     bool            `json:"is_partial" gorm:"not null;default:false"`
	UnitPrice     decimal.Decimal `json:"unit_price" gorm:"type:numeric(18,6);not null"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:numeric(18,6);not null;default:0"`
	GSTRate       decimal.Decimal `json:"gst_rate" gorm:"type:numeric(6,3);not null;default:0"`
	TaxableAmount decimal.Decimal `json:"taxable_amount" gorm:"type:numeric(18,6);not null"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount" gorm:"type:numeric(18,6);not null;default:0"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount" gorm:"type:numeric(18,6);not null;default:0"`
	IGSTAmount    decimal.Decimal `json:"igst_amount" gorm:"type:numeric(18,6);not null;default:0"`
	CessAmount    decimal.Decimal `json:"cess_amount" gorm:"type:numeric(18,6);not null;default:0"`
	TotalAmount   decimal.Decimal `json:"total_amount" gorm:"type:numeric(18,6);not null"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SaleItem) TableName() string { return "sale_items" }

// TotalTax sums the line's tax components.
func (i *SaleItem) TotalTax() decimal.Decimal {
	return i.CGSTAmount.Add(i.SGSTAmount).Add(i.IGSTAmount).Add(i.CessAmount)
}

// SaleItemDetail is a sale line joined with its batch context, as read by the
// margin recorder. Batch is nil when the line has no batch reference.
type SaleItemDetail struct {
	SaleItem
	Batch *batchdomain.Batch
}

// SaleDetail is the finalized-sale snapshot the margin recorder consumes.
type SaleDetail struct {
	Sale  Sale
	Items []SaleItemDetail
}

var (
	ErrInvalidStore     = errors.New("invalid_store")
	ErrNoItems          = errors.New("sale_must_have_items")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidPrice     = errors.New("invalid_unit_price")
	ErrInvalidDiscount  = errors.New("invalid_discount")
	ErrNotFound         = errors.New("sale_not_found")
	ErrAlreadyFinalized = errors.New("sale_already_finalized")
)
