package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// EntryType classifies a margin ledger entry.
type EntryType string

const (
	// EntryTypeSale is the only entry type currently produced. Corrections
	// are modeled as new entries, never as updates to existing rows.
	EntryTypeSale EntryType = "SALE"
)

// UnitKind tags a quantity with the unit it is denominated in. Every quantity
// entering the costing math must carry this tag; the core never infers it.
type UnitKind string

const (
	// UnitBase means the quantity is in base units (e.g. tablets).
	UnitBase UnitKind = "base_unit"
	// UnitPack means the quantity is in pack units (e.g. strips).
	UnitPack UnitKind = "pack_unit"
)

// Valid reports whether the tag is one of the known unit kinds.
func (k UnitKind) Valid() bool {
	return k == UnitBase || k == UnitPack
}

// MarginLedgerEntry is one immutable profitability record for a sale line.
// Rows are insert-only: no component updates or deletes them.
type MarginLedgerEntry struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	StoreID       snowflake.ID    `json:"store_id" gorm:"not null;index:ix_margin_ledger_store_finalized,priority:1"`
	SaleID        snowflake.ID    `json:"sale_id" gorm:"not null;index"`
	SaleItemID    snowflake.ID    `json:"sale_item_id" gorm:"not null"`
	BatchID       snowflake.ID    `json:"batch_id" gorm:"not null"`
	DrugID        snowflake.ID    `json:"drug_id" gorm:"not null"`
	CostPrice     decimal.Decimal `json:"cost_price" gorm:"type:numeric(18,6);not null"`
	SellingPrice  decimal.Decimal `json:"selling_price" gorm:"type:numeric(18,6);not null"`
	TaxAmount     decimal.Decimal `json:"tax_amount" gorm:"type:numeric(18,6);not null"`
	Quantity      decimal.Decimal `json:"quantity" gorm:"type:numeric(18,6);not null"`
	TotalCost     decimal.Decimal `json:"total_cost" gorm:"type:numeric(18,6);not null"`
	TotalRevenue  decimal.Decimal `json:"total_revenue" gorm:"type:numeric(18,6);not null"`
	MarginAmount  decimal.Decimal `json:"margin_amount" gorm:"type:numeric(18,6);not null"`
	MarginPercent decimal.Decimal `json:"margin_percent" gorm:"type:numeric(18,6);not null"`
	Type          EntryType       `json:"type" gorm:"type:text;not null"`
	IsProvisional bool            `json:"is_provisional" gorm:"not null;default:false"`
	FinalizedAt   time.Time       `json:"finalized_at" gorm:"not null;index:ix_margin_ledger_store_finalized,priority:2"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MarginLedgerEntry) TableName() string { return "margin_ledger_entries" }
