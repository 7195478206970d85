package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
	"github.com/rxledger/rxledger/internal/config"
	margindomain "github.com/rxledger/rxledger/internal/margin/domain"
	saledomain "github.com/rxledger/rxledger/internal/sale/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      margindomain.Repository
	Sales     saledomain.Repository
	Batches   batchdomain.Repository
	Reporting *config.ReportingHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      margindomain.Repository
	sales     saledomain.Repository
	batches   batchdomain.Repository
	genID     *snowflake.Node
	reporting *config.ReportingHolder
}

func New(p Params) margindomain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("margin.service"),
		repo:      p.Repo,
		sales:     p.Sales,
		batches:   p.Batches,
		genID:     p.GenID,
		reporting: p.Reporting,
	}
}

// RecordSaleMargin derives one ledger entry per stocked line of a finalized
// sale and appends them in a single atomic write. Every failure ends up in
// the result, never in a panic or returned error: the margin ledger is a
// derived record and must not disturb the sale flow that triggered it.
func (s *Service) RecordSaleMargin(ctx context.Context, storeID, saleID snowflake.ID) margindomain.RecordingResult {
	result := margindomain.RecordingResult{SaleID: saleID}

	if storeID == 0 {
		result.Err = margindomain.ErrInvalidStore
		return s.failed(result)
	}
	if saleID == 0 {
		result.Err = margindomain.ErrInvalidSale
		return s.failed(result)
	}

	detail, err := s.sales.FindDetail(ctx, s.db, saleID)
	if err != nil {
		result.Err = fmt.Errorf("load sale detail: %w", err)
		return s.failed(result)
	}
	if detail == nil {
		result.Err = margindomain.ErrSaleNotFound
		return s.failed(result)
	}
	if detail.Sale.FinalizedAt == nil || detail.Sale.Status != saledomain.SaleStatusCompleted {
		result.Err = margindomain.ErrSaleNotFinal
		return s.failed(result)
	}

	now := time.Now().UTC()
	entries := make([]margindomain.MarginLedgerEntry, 0, len(detail.Items))
	for _, item := range detail.Items {
		if item.Batch == nil {
			// Non-stock line (service charge, unmatched batch): never
			// ledgered with a null cost.
			result.Skipped++
			continue
		}
		entries = append(entries, s.buildEntry(storeID, detail.Sale, item, now))
	}

	if len(entries) == 0 {
		s.log.Debug("no stocked lines to record", zap.String("sale_id", saleID.String()))
		return result
	}

	if err := s.repo.InsertEntries(ctx, s.db, entries); err != nil {
		result.Err = fmt.Errorf("insert ledger entries: %w", err)
		return s.failed(result)
	}

	result.Entries = len(entries)
	entriesRecorded.Add(float64(len(entries)))
	s.log.Info("recorded sale margin",
		zap.String("sale_id", saleID.String()),
		zap.Int("entries", result.Entries),
		zap.Int("skipped", result.Skipped),
	)
	return result
}

func (s *Service) buildEntry(storeID snowflake.ID, sale saledomain.Sale, item saledomain.SaleItemDetail, now time.Time) margindomain.MarginLedgerEntry {
	kind := margindomain.UnitPack
	if item.IsPartial {
		kind = margindomain.UnitBase
	}

	unitCost := margindomain.ResolveUnitCost(item.Batch.PurchasePrice, item.Batch.BaseUnitsPerPack(), kind)
	line := margindomain.ComputeLineMargin(item.TaxableAmount, unitCost, item.Quantity)

	sellingPrice := decimal.Zero
	if !item.Quantity.IsZero() {
		sellingPrice = line.NetRevenue.Div(item.Quantity)
	}

	return margindomain.MarginLedgerEntry{
		ID:            s.genID.Generate(),
		StoreID:       storeID,
		SaleID:        sale.ID,
		SaleItemID:    item.ID,
		BatchID:       item.Batch.ID,
		DrugID:        item.DrugID,
		CostPrice:     unitCost,
		SellingPrice:  sellingPrice,
		TaxAmount:     item.TotalTax(),
		Quantity:      item.Quantity,
		TotalCost:     line.TotalCost,
		TotalRevenue:  line.NetRevenue,
		MarginAmount:  line.MarginAmount,
		MarginPercent: line.MarginPercent,
		Type:          margindomain.EntryTypeSale,
		IsProvisional: false,
		FinalizedAt:   sale.FinalizedAt.UTC(),
		CreatedAt:     now,
	}
}

func (s *Service) failed(result margindomain.RecordingResult) margindomain.RecordingResult {
	recordingsFailed.Inc()
	s.log.Error("sale margin recording dropped",
		zap.String("sale_id", result.SaleID.String()),
		zap.Error(result.Err),
	)
	return result
}

func (s *Service) MarginForSale(ctx context.Context, saleID snowflake.ID) (*margindomain.SaleMargin, error) {
	if saleID == 0 {
		return nil, margindomain.ErrInvalidSale
	}

	sums, err := s.repo.SumBySale(ctx, s.db, saleID)
	if err != nil {
		return nil, err
	}

	return &margindomain.SaleMargin{
		SaleID:  saleID,
		Margin:  sums.Margin,
		Revenue: sums.Revenue,
		Cost:    sums.Cost,
	}, nil
}

func (s *Service) AggregatedMargin(ctx context.Context, storeID snowflake.ID, from, to time.Time) (*margindomain.AggregatedMargin, error) {
	if storeID == 0 {
		return nil, margindomain.ErrInvalidStore
	}

	if from.IsZero() && to.IsZero() {
		from, to = defaultWindow(s.reporting.Get().DefaultWindowDays)
	}
	if from.IsZero() || to.IsZero() || from.After(to) {
		return nil, margindomain.ErrInvalidRange
	}

	sums, err := s.repo.SumByStoreAndRange(ctx, s.db, storeID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}

	return &margindomain.AggregatedMargin{
		TotalMargin:      sums.Margin,
		TotalRevenue:     sums.Revenue,
		TotalCost:        sums.Cost,
		NetMarginPercent: margindomain.MarginPercent(sums.Margin, sums.Revenue),
	}, nil
}

// EstimateBasketMargin runs the recorder's math over an unsaved cart. Lines
// whose batch no longer exists are skipped so the preview degrades instead of
// failing; malformed lines reject the whole request up front.
func (s *Service) EstimateBasketMargin(ctx context.Context, lines []margindomain.BasketLine) (*margindomain.AggregatedMargin, error) {
	if len(lines) == 0 {
		return nil, margindomain.ErrEmptyBasket
	}

	ids := make([]snowflake.ID, 0, len(lines))
	for _, line := range lines {
		if line.BatchID == 0 || line.Quantity.Sign() <= 0 || !line.UnitKind.Valid() {
			return nil, margindomain.ErrInvalidBasket
		}
		if line.Price.IsNegative() || line.Discount.IsNegative() || line.GSTRate.IsNegative() {
			return nil, margindomain.ErrInvalidBasket
		}
		ids = append(ids, line.BatchID)
	}

	batches, err := s.batches.FindByIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	totalMargin := decimal.Zero
	totalRevenue := decimal.Zero
	totalCost := decimal.Zero

	for _, line := range lines {
		batch, ok := batches[line.BatchID]
		if !ok {
			continue
		}

		gross := line.Price.Mul(line.Quantity).Sub(line.Discount)
		if gross.IsNegative() {
			gross = decimal.Zero
		}
		net := margindomain.NetRevenueFromGross(gross, line.GSTRate)
		unitCost := margindomain.ResolveUnitCost(batch.PurchasePrice, batch.BaseUnitsPerPack(), line.UnitKind)
		lm := margindomain.ComputeLineMargin(net, unitCost, line.Quantity)

		totalMargin = totalMargin.Add(lm.MarginAmount)
		totalRevenue = totalRevenue.Add(lm.NetRevenue)
		totalCost = totalCost.Add(lm.TotalCost)
	}

	return &margindomain.AggregatedMargin{
		TotalMargin:      totalMargin,
		TotalRevenue:     totalRevenue,
		TotalCost:        totalCost,
		NetMarginPercent: margindomain.MarginPercent(totalMargin, totalRevenue),
	}, nil
}

// defaultWindow is the last `days` UTC days ending today, inclusive.
func defaultWindow(days int) (time.Time, time.Time) {
	if days < 1 {
		days = 1
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))
	end := today.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
