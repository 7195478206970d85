package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
	saledomain "github.com/rxledger/rxledger/internal/sale/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() saledomain.Repository {
	return &repo{}
}

const saleColumns = `id, store_id, status, total_amount, tax_amount, finalized_at, created_at, updated_at`

const itemColumns = `id, sale_id, drug_id, batch_id, quantity, is_partial, unit_price, discount, gst_rate,
	 taxable_amount, cgst_amount, sgst_amount, igst_amount, cess_amount, total_amount, created_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sale *saledomain.Sale) error {
	err := db.WithContext(ctx).Exec(
		`INSERT INTO sales (id, store_id, status, total_amount, tax_amount, finalized_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID,
		sale.StoreID,
		sale.Status,
		sale.TotalAmount,
		sale.TaxAmount,
		sale.FinalizedAt,
		sale.CreatedAt,
		sale.UpdatedAt,
	).Error
	if err != nil {
		return err
	}

	for i := range sale.Items {
		item := &sale.Items[i]
		if err := db.WithContext(ctx).Exec(
			`INSERT INTO sale_items (id, sale_id, drug_id, batch_id, quantity, is_partial, unit_price, discount, gst_rate,
			 taxable_amount, cgst_amount, sgst_amount, igst_amount, cess_amount, total_amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID,
			item.SaleID,
			item.DrugID,
			item.BatchID,
			item.Quantity,
			item.IsPartial,
			item.UnitPrice,
			item.Discount,
			item.GSTRate,
			item.TaxableAmount,
			item.CGSTAmount,
			item.SGSTAmount,
			item.IGSTAmount,
			item.CessAmount,
			item.TotalAmount,
			item.CreatedAt,
		).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (*saledomain.Sale, error) {
	var sale saledomain.Sale
	err := db.WithContext(ctx).Raw(
		`SELECT `+saleColumns+` FROM sales WHERE id = ?`,
		saleID,
	).Scan(&sale).Error
	if err != nil {
		return nil, err
	}
	if sale.ID == 0 {
		return nil, nil
	}

	items, err := r.findItems(ctx, db, saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items

	return &sale, nil
}

func (r *repo) FindDetail(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (*saledomain.SaleDetail, error) {
	sale, err := r.FindByID(ctx, db, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}

	batchIDs := make([]snowflake.ID, 0, len(sale.Items))
	for _, item := range sale.Items {
		if item.BatchID != nil {
			batchIDs = append(batchIDs, *item.BatchID)
		}
	}

	batches := make(map[snowflake.ID]batchdomain.Batch, len(batchIDs))
	if len(batchIDs) > 0 {
		var rows []batchdomain.Batch
		err := db.WithContext(ctx).Raw(
			`SELECT id, store_id, drug_id, batch_no, expiry_date, purchase_price, mrp, units_per_pack, quantity, created_at, updated_at
			 FROM batches WHERE id IN ?`,
			batchIDs,
		).Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, b := range rows {
			batches[b.ID] = b
		}
	}

	detail := &saledomain.SaleDetail{Sale: *sale}
	for _, item := range sale.Items {
		d := saledomain.SaleItemDetail{SaleItem: item}
		if item.BatchID != nil {
			if b, ok := batches[*item.BatchID]; ok {
				batch := b
				d.Batch = &batch
			}
		}
		detail.Items = append(detail.Items, d)
	}

	return detail, nil
}

func (r *repo) MarkFinalized(ctx context.Context, db *gorm.DB, saleID snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).Exec(
		`UPDATE sales SET status = ?, finalized_at = ?, updated_at = ? WHERE id = ?`,
		saledomain.SaleStatusCompleted,
		at,
		at,
		saleID,
	).Error
}

func (r *repo) findItems(ctx context.Context, db *gorm.DB, saleID snowflake.ID) ([]saledomain.SaleItem, error) {
	var items []saledomain.SaleItem
	err := db.WithContext(ctx).Raw(
		`SELECT `+itemColumns+` FROM sale_items WHERE sale_id = ? ORDER BY created_at ASC, id ASC`,
		saleID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
