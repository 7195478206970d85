package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, batch *Batch) error
	// FindByIDs returns the batches that exist, keyed by id. Missing ids are
	// simply absent from the map.
	FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]Batch, error)
	List(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]Batch, error)
}
