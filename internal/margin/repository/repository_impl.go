package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	margindomain "github.com/rxledger/rxledger/internal/margin/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() margindomain.Repository {
	return &repo{}
}

// InsertEntries appends all entries in one transaction. The ledger is
// insert-only; there is no update or delete counterpart on purpose.
func (r *repo) InsertEntries(ctx context.Context, db *gorm.DB, entries []margindomain.MarginLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			if err := tx.Exec(
				`INSERT INTO margin_ledger_entries (
					id, store_id, sale_id, sale_item_id, batch_id, drug_id,
					cost_price, selling_price, tax_amount, quantity,
					total_cost, total_revenue, margin_amount, margin_percent,
					type, is_provisional, finalized_at, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				e.ID,
				e.StoreID,
				e.SaleID,
				e.SaleItemID,
				e.BatchID,
				e.DrugID,
				e.CostPrice,
				e.SellingPrice,
				e.TaxAmount,
				e.Quantity,
				e.TotalCost,
				e.TotalRevenue,
				e.MarginAmount,
				e.MarginPercent,
				e.Type,
				e.IsProvisional,
				e.FinalizedAt,
				e.CreatedAt,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repo) SumBySale(ctx context.Context, db *gorm.DB, saleID snowflake.ID) (margindomain.Sums, error) {
	var row margindomain.Sums
	err := db.WithContext(ctx).Raw(
		`SELECT
			COALESCE(SUM(margin_amount), 0) AS margin,
			COALESCE(SUM(total_revenue), 0) AS revenue,
			COALESCE(SUM(total_cost), 0) AS cost
		 FROM margin_ledger_entries
		 WHERE sale_id = ?`,
		saleID,
	).Scan(&row).Error
	if err != nil {
		return margindomain.Sums{}, err
	}
	return row, nil
}

func (r *repo) SumByStoreAndRange(ctx context.Context, db *gorm.DB, storeID snowflake.ID, from, to time.Time) (margindomain.Sums, error) {
	var row margindomain.Sums
	err := db.WithContext(ctx).Raw(
		`SELECT
			COALESCE(SUM(margin_amount), 0) AS margin,
			COALESCE(SUM(total_revenue), 0) AS revenue,
			COALESCE(SUM(total_cost), 0) AS cost
		 FROM margin_ledger_entries
		 WHERE store_id = ? AND finalized_at >= ? AND finalized_at <= ?`,
		storeID,
		from,
		to,
	).Scan(&row).Error
	if err != nil {
		return margindomain.Sums{}, err
	}
	return row, nil
}
