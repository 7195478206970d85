package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Sale, error)
	Get(ctx context.Context, saleID snowflake.ID) (*Sale, error)
	// Finalize completes the sale and then records its margin best-effort.
	// A margin recording failure is logged, never surfaced to the caller.
	Finalize(ctx context.Context, saleID snowflake.ID) (*Sale, error)
}

type CreateRequest struct {
	StoreID    snowflake.ID        `json:"store_id"`
	InterState bool                `json:"inter_state"`
	Items      []CreateItemRequest `json:"items"`
}

type CreateItemRequest struct {
	DrugID    snowflake.ID    `json:"drug_id"`
	BatchID   *snowflake.ID   `json:"batch_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	IsPartial bool            `json:"is_partial"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	GSTRate   decimal.Decimal `json:"gst_rate"`
	CessRate  decimal.Decimal `json:"cess_rate"`
}
