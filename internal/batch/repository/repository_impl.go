package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() batchdomain.Repository {
	return &repo{}
}

const batchColumns = `id, store_id, drug_id, batch_no, expiry_date, purchase_price, mrp, units_per_pack, quantity, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, b *batchdomain.Batch) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO batches (id, store_id, drug_id, batch_no, expiry_date, purchase_price, mrp, units_per_pack, quantity, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.StoreID,
		b.DrugID,
		b.BatchNo,
		b.ExpiryDate,
		b.PurchasePrice,
		b.MRP,
		b.UnitsPerPack,
		b.Quantity,
		b.CreatedAt,
		b.UpdatedAt,
	).Error
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]batchdomain.Batch, error) {
	result := make(map[snowflake.ID]batchdomain.Batch, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var batches []batchdomain.Batch
	err := db.WithContext(ctx).Raw(
		`SELECT `+batchColumns+` FROM batches WHERE id IN ?`,
		ids,
	).Scan(&batches).Error
	if err != nil {
		return nil, err
	}

	for _, b := range batches {
		result[b.ID] = b
	}
	return result, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]batchdomain.Batch, error) {
	var batches []batchdomain.Batch
	err := db.WithContext(ctx).Raw(
		`SELECT `+batchColumns+` FROM batches WHERE store_id = ? ORDER BY created_at ASC`,
		storeID,
	).Scan(&batches).Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}
