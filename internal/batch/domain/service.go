package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Batch, error)
	List(ctx context.Context, storeID snowflake.ID) ([]Batch, error)
}

type CreateRequest struct {
	StoreID       snowflake.ID    `json:"store_id"`
	DrugID        snowflake.ID    `json:"drug_id"`
	BatchNo       string          `json:"batch_no"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	MRP           decimal.Decimal `json:"mrp"`
	UnitsPerPack  int64           `json:"units_per_pack"`
	Quantity      decimal.Decimal `json:"quantity"`
}
