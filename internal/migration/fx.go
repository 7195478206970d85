package migration

import (
	batchdomain "github.com/rxledger/rxledger/internal/batch/domain"
	"github.com/rxledger/rxledger/internal/config"
	drugdomain "github.com/rxledger/rxledger/internal/drug/domain"
	margindomain "github.com/rxledger/rxledger/internal/margin/domain"
	saledomain "github.com/rxledger/rxledger/internal/sale/domain"
	"github.com/rxledger/rxledger/internal/seed"
	storedomain "github.com/rxledger/rxledger/internal/store/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&storedomain.Store{},
				&drugdomain.Drug{},
				&batchdomain.Batch{},
				&saledomain.Sale{},
				&saledomain.SaleItem{},
				&margindomain.MarginLedgerEntry{},
			); err != nil {
				return err
			}
		}

		if cfg.DefaultStoreID != 0 {
			return seed.EnsureDefaultStoreWithID(conn, cfg.DefaultStoreID)
		}
		return seed.EnsureDefaultStore(conn)
	}),
)
