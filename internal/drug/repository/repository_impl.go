package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	drugdomain "github.com/rxledger/rxledger/internal/drug/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() drugdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, d *drugdomain.Drug) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO drugs (id, store_id, name, generic_name, manufacturer, hsn_code, gst_rate, pack_unit, base_unit, units_per_pack, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.StoreID,
		d.Name,
		d.GenericName,
		d.Manufacturer,
		d.HSNCode,
		d.GSTRate,
		d.PackUnit,
		d.BaseUnit,
		d.UnitsPerPack,
		d.CreatedAt,
		d.UpdatedAt,
	).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]drugdomain.Drug, error) {
	var drugs []drugdomain.Drug
	err := db.WithContext(ctx).Raw(
		`SELECT id, store_id, name, generic_name, manufacturer, hsn_code, gst_rate, pack_unit, base_unit, units_per_pack, created_at, updated_at
		 FROM drugs WHERE store_id = ? ORDER BY name ASC`,
		storeID,
	).Scan(&drugs).Error
	if err != nil {
		return nil, err
	}
	return drugs, nil
}
