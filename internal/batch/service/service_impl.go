package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  batchdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  batchdomain.Repository
	genID *snowflake.Node
}

func New(p Params) batchdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("batch.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req batchdomain.CreateRequest) (*batchdomain.Batch, error) {
	if req.StoreID == 0 {
		return nil, batchdomain.ErrInvalidStore
	}
	if req.DrugID == 0 {
		return nil, batchdomain.ErrInvalidDrug
	}
	batchNo := strings.TrimSpace(req.BatchNo)
	if batchNo == "" {
		return nil, batchdomain.ErrInvalidBatchNo
	}
	if req.PurchasePrice.IsNegative() {
		return nil, batchdomain.ErrInvalidPrice
	}

	unitsPerPack := req.UnitsPerPack
	if unitsPerPack <= 0 {
		unitsPerPack = 1
	}

	now := time.Now().UTC()
	b := &batchdomain.Batch{
		ID:            s.genID.Generate(),
		StoreID:       req.StoreID,
		DrugID:        req.DrugID,
		BatchNo:       batchNo,
		ExpiryDate:    req.ExpiryDate,
		PurchasePrice: req.PurchasePrice,
		MRP:           req.MRP,
		UnitsPerPack:  unitsPerPack,
		Quantity:      req.Quantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, storeID snowflake.ID) ([]batchdomain.Batch, error) {
	if storeID == 0 {
		return nil, batchdomain.ErrInvalidStore
	}
	return s.repo.List(ctx, s.db, storeID)
}
