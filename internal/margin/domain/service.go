package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	// RecordSaleMargin computes and persists one ledger entry per stocked
	// line of a finalized sale. It never returns an error: failures are
	// carried in the result so the sale flow can log and move on.
	RecordSaleMargin(ctx context.Context, storeID, saleID snowflake.ID) RecordingResult

	// MarginForSale sums the ledger entries of one sale. Zero values, not an
	// error, when nothing was recorded.
	MarginForSale(ctx context.Context, saleID snowflake.ID) (*SaleMargin, error)

	// AggregatedMargin sums ledger entries for a store with finalized_at in
	// [from, to] inclusive. A zero from/to defaults to the current UTC day.
	AggregatedMargin(ctx context.Context, storeID snowflake.ID, from, to time.Time) (*AggregatedMargin, error)

	// EstimateBasketMargin runs the same costing math over an unsaved basket
	// for live display. Lines referencing unknown batches are skipped; the
	// ledger is never touched.
	EstimateBasketMargin(ctx context.Context, lines []BasketLine) (*AggregatedMargin, error)
}

// RecordingResult reports the outcome of one recording attempt. The
// non-blocking contract is explicit here: callers inspect Err, they are never
// thrown at.
type RecordingResult struct {
	SaleID  snowflake.ID
	Entries int
	Skipped int
	Err     error
}

// SaleMargin is the per-sale rollup.
type SaleMargin struct {
	SaleID  snowflake.ID    `json:"sale_id"`
	Margin  decimal.Decimal `json:"margin"`
	Revenue decimal.Decimal `json:"revenue"`
	Cost    decimal.Decimal `json:"cost"`
}

// AggregatedMargin is the store/date-range rollup, also returned by the
// provisional estimator.
type AggregatedMargin struct {
	TotalMargin      decimal.Decimal `json:"total_margin"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	NetMarginPercent decimal.Decimal `json:"net_margin_percent"`
}

// BasketLine is one candidate line of an unsaved POS cart. UnitKind is the
// caller's explicit statement of what Quantity is denominated in.
type BasketLine struct {
	BatchID  snowflake.ID    `json:"batch_id"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitKind UnitKind        `json:"unit_kind"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
	GSTRate  decimal.Decimal `json:"gst_rate"`
}

var (
	ErrInvalidStore  = errors.New("invalid_store")
	ErrInvalidSale   = errors.New("invalid_sale")
	ErrSaleNotFound  = errors.New("sale_not_found")
	ErrEmptyBasket   = errors.New("empty_basket")
	ErrInvalidBasket = errors.New("invalid_basket_line")
	ErrInvalidRange  = errors.New("invalid_date_range")
	ErrSaleNotFinal  = errors.New("sale_not_finalized")
)
