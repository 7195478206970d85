package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	margindomain "github.com/rxledger/rxledger/internal/margin/domain"
	saledomain "github.com/rxledger/rxledger/internal/sale/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   saledomain.Repository
	Margin margindomain.Service
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   saledomain.Repository
	margin margindomain.Service
	genID  *snowflake.Node
}

func New(p Params) saledomain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("sale.service"),
		repo:   p.Repo,
		margin: p.Margin,
		genID:  p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req saledomain.CreateRequest) (*saledomain.Sale, error) {
	if req.StoreID == 0 {
		return nil, saledomain.ErrInvalidStore
	}
	if len(req.Items) == 0 {
		return nil, saledomain.ErrNoItems
	}

	now := time.Now().UTC()
	saleID := s.genID.Generate()

	sale := &saledomain.Sale{
		ID:          saleID,
		StoreID:     req.StoreID,
		Status:      saledomain.SaleStatusDraft,
		TotalAmount: decimal.Zero,
		TaxAmount:   decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, in := range req.Items {
		item, err := s.buildItem(saleID, in, req.InterState, now)
		if err != nil {
			return nil, err
		}
		sale.TotalAmount = sale.TotalAmount.Add(item.TotalAmount)
		sale.TaxAmount = sale.TaxAmount.Add(item.TotalTax())
		sale.Items = append(sale.Items, *item)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Insert(ctx, tx, sale)
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// buildItem derives the GST-exclusive taxable amount and the tax split for
// one line. Quoted prices are tax-inclusive, so the line total is simply
// price*qty - discount and tax is backed out of it.
func (s *Service) buildItem(saleID snowflake.ID, in saledomain.CreateItemRequest, interState bool, now time.Time) (*saledomain.SaleItem, error) {
	if in.Quantity.Sign() <= 0 {
		return nil, saledomain.ErrInvalidQuantity
	}
	if in.UnitPrice.IsNegative() {
		return nil, saledomain.ErrInvalidPrice
	}
	if in.Discount.IsNegative() {
		return nil, saledomain.ErrInvalidDiscount
	}

	gross := in.UnitPrice.Mul(in.Quantity).Sub(in.Discount)
	if gross.IsNegative() {
		gross = decimal.Zero
	}

	combinedRate := in.GSTRate.Add(in.CessRate)
	taxable := margindomain.NetRevenueFromGross(gross, combinedRate)
	gstTax := taxable.Mul(in.GSTRate).Div(hundred)
	cess := taxable.Mul(in.CessRate).Div(hundred)

	item := &saledomain.SaleItem{
		ID:            s.genID.Generate(),
		SaleID:        saleID,
		DrugID:        in.DrugID,
		BatchID:       in.BatchID,
		Quantity:      in.Quantity,
		IsPartial:     in.IsPartial,
		UnitPrice:     in.UnitPrice,
		Discount:      in.Discount,
		GSTRate:       in.GSTRate,
		TaxableAmount: taxable,
		CessAmount:    cess,
		TotalAmount:   gross,
		CreatedAt:     now,
	}

	if interState {
		item.IGSTAmount = gstTax
	} else {
		half := gstTax.Div(decimal.NewFromInt(2))
		item.CGSTAmount = half
		item.SGSTAmount = half
	}

	return item, nil
}

func (s *Service) Get(ctx context.Context, saleID snowflake.ID) (*saledomain.Sale, error) {
	sale, err := s.repo.FindByID(ctx, s.db, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saledomain.ErrNotFound
	}
	return sale, nil
}

// Finalize completes the sale, then records its margin. Recording is outside
// the sale's consistency boundary: the ledger write happens after the sale
// transaction commits, and its failure only produces a log line.
func (s *Service) Finalize(ctx context.Context, saleID snowflake.ID) (*saledomain.Sale, error) {
	sale, err := s.repo.FindByID(ctx, s.db, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saledomain.ErrNotFound
	}
	if sale.Status == saledomain.SaleStatusCompleted {
		return nil, saledomain.ErrAlreadyFinalized
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.MarkFinalized(ctx, tx, saleID, now)
	})
	if err != nil {
		return nil, err
	}

	sale.Status = saledomain.SaleStatusCompleted
	sale.FinalizedAt = &now
	sale.UpdatedAt = now

	result := s.margin.RecordSaleMargin(ctx, sale.StoreID, sale.ID)
	if result.Err != nil {
		s.log.Warn("margin recording failed, sale unaffected",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(result.Err),
		)
	} else {
		s.log.Info("margin recorded",
			zap.String("sale_id", sale.ID.String()),
			zap.Int("entries", result.Entries),
			zap.Int("skipped", result.Skipped),
		)
	}

	return sale, nil
}
