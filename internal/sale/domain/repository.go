package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Insert writes the sale and all of its items. Callers pass a transaction
	// when atomicity across both tables is required.
	Insert(ctx context.Context, db *gorm.DB, sale *Sale) error
	FindByID(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (*Sale, error)
	// FindDetail loads the sale and its items joined with batch context.
	FindDetail(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (*SaleDetail, error)
	MarkFinalized(ctx context.Context, db *gorm.DB, saleID snowflake.ID, at time.Time) error
}
