package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, drug *Drug) error
	List(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]Drug, error)
}
