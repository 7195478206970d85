package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rxledger/rxledger/internal/batch"
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
	"github.com/rxledger/rxledger/internal/config"
	"github.com/rxledger/rxledger/internal/drug"
	drugdomain "github.com/rxledger/rxledger/internal/drug/domain"
	"github.com/rxledger/rxledger/internal/margin"
	margindomain "github.com/rxledger/rxledger/internal/margin/domain"
	"github.com/rxledger/rxledger/internal/sale"
	saledomain "github.com/rxledger/rxledger/internal/sale/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	drug.Module,
	batch.Module,
	sale.Module,
	margin.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	reporting *config.ReportingHolder
	log       *zap.Logger
	drugSvc   drugdomain.Service
	batchSvc  batchdomain.Service
	saleSvc   saledomain.Service
	marginSvc margindomain.Service
}

type ServerParams struct {
	fx.In

	Engine    *gin.Engine
	Cfg       config.Config
	Reporting *config.ReportingHolder
	Log       *zap.Logger
	DrugSvc   drugdomain.Service
	BatchSvc  batchdomain.Service
	SaleSvc   saledomain.Service
	MarginSvc margindomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:    p.Engine,
		cfg:       p.Cfg,
		reporting: p.Reporting,
		log:       p.Log.Named("http.server"),
		drugSvc:   p.DrugSvc,
		batchSvc:  p.BatchSvc,
		saleSvc:   p.SaleSvc,
		marginSvc: p.MarginSvc,
	}
}

// RegisterAPIRoutes mounts the v1 API. Authorization is the caller's
// concern: deployments front this service with the platform gateway.
func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/drugs", s.CreateDrug)
	v1.GET("/drugs", s.ListDrugs)

	v1.POST("/batches", s.CreateBatch)
	v1.GET("/batches", s.ListBatches)

	v1.POST("/sales", s.CreateSale)
	v1.GET("/sales/:id", s.GetSale)
	v1.POST("/sales/:id/finalize", s.FinalizeSale)

	v1.GET("/sales/:id/margin", s.GetSaleMargin)
	v1.GET("/stores/:id/margin", s.GetStoreMargin)
	v1.POST("/margin/estimate", s.EstimateMargin)
}
