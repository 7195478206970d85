package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	drugdomain "github.com/rxledger/rxledger/internal/drug/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  drugdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  drugdomain.Repository
	genID *snowflake.Node
}

func New(p Params) drugdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("drug.service"),
		repo:  p.Repo,
		genID: p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req drugdomain.CreateRequest) (*drugdomain.Drug, error) {
	if req.StoreID == 0 {
		return nil, drugdomain.ErrInvalidStore
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, drugdomain.ErrInvalidName
	}

	packUnit := strings.TrimSpace(req.PackUnit)
	if packUnit == "" {
		packUnit = "pack"
	}
	baseUnit := strings.TrimSpace(req.BaseUnit)
	if baseUnit == "" {
		baseUnit = "unit"
	}
	unitsPerPack := req.UnitsPerPack
	if unitsPerPack <= 0 {
		unitsPerPack = 1
	}

	now := time.Now().UTC()
	d := &drugdomain.Drug{
		ID:           s.genID.Generate(),
		StoreID:      req.StoreID,
		Name:         name,
		GenericName:  strings.TrimSpace(req.GenericName),
		Manufacturer: strings.TrimSpace(req.Manufacturer),
		HSNCode:      strings.TrimSpace(req.HSNCode),
		GSTRate:      req.GSTRate,
		PackUnit:     packUnit,
		BaseUnit:     baseUnit,
		UnitsPerPack: unitsPerPack,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *Service) List(ctx context.Context, storeID snowflake.ID) ([]drugdomain.Drug, error) {
	if storeID == 0 {
		return nil, drugdomain.ErrInvalidStore
	}
	return s.repo.List(ctx, s.db, storeID)
}
