package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Drug, error)
	List(ctx context.Context, storeID snowflake.ID) ([]Drug, error)
}

type CreateRequest struct {
	StoreID      snowflake.ID    `json:"store_id"`
	Name         string          `json:"name"`
	GenericName  string          `json:"generic_name"`
	Manufacturer string          `json:"manufacturer"`
	HSNCode      string          `json:"hsn_code"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	PackUnit     string          `json:"pack_unit"`
	BaseUnit     string          `json:"base_unit"`
	UnitsPerPack int64           `json:"units_per_pack"`
}
