package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	storedomain "github.com/rxledger/rxledger/internal/store/domain"
	pkgdb "github.com/rxledger/rxledger/pkg/db"
	"gorm.io/gorm"
)

const (
	defaultStoreCode = "main"
	defaultStoreName = "Main Store"
)

// EnsureDefaultStore seeds the default store for startup bootstrap.
func EnsureDefaultStore(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureDefaultStoreTx(ctx, tx, node.Generate())
		return err
	})
}

// EnsureDefaultStoreWithID seeds the default store under a fixed id, used
// when deployments pin the store id through configuration.
func EnsureDefaultStoreWithID(db *gorm.DB, id int64) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		_, err := ensureDefaultStoreTx(ctx, tx, snowflake.ID(id))
		return err
	})
}

func ensureDefaultStoreTx(ctx context.Context, tx *gorm.DB, id snowflake.ID) (*storedomain.Store, error) {
	var existing storedomain.Store
	err := tx.WithContext(ctx).Raw(
		`SELECT id, code, name, timezone, created_at FROM stores WHERE code = ?`,
		defaultStoreCode,
	).Scan(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing.ID != 0 {
		return &existing, nil
	}

	store := storedomain.Store{
		ID:        id,
		Code:      defaultStoreCode,
		Name:      defaultStoreName,
		Timezone:  "UTC",
		CreatedAt: time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Exec(
		`INSERT INTO stores (id, code, name, timezone, created_at) VALUES (?, ?, ?, ?, ?)`,
		store.ID,
		store.Code,
		store.Name,
		store.Timezone,
		store.CreatedAt,
	).Error; err != nil {
		// Another replica may have seeded the store between the read and
		// the insert.
		if pkgdb.IsDuplicateKeyErr(err) {
			return &store, nil
		}
		return nil, err
	}

	return &store, nil
}
