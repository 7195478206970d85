package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sums is the raw aggregate the repository returns; COALESCE semantics apply,
// so empty result sets come back as zeros.
type Sums struct {
	Margin  decimal.Decimal
	Revenue decimal.Decimal
	Cost    decimal.Decimal
}

type Repository interface {
	// InsertEntries writes all entries in one transaction; all-or-nothing.
	InsertEntries(ctx context.Context, db *gorm.DB, entries []MarginLedgerEntry) error
	SumBySale(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (Sums, error)
	SumByStoreAndRange(ctx context.Context, db *gorm.DB, storeID snowflake.ID, from, to time.Time) (Sums, error)
}
