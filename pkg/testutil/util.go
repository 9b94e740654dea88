package testutil

import (
	"context"
	"time"

	"github.com/luckyspin-lab/backend/config"
	"github.com/luckyspin-lab/backend/migration"
	"github.com/luckyspin-lab/backend/pkg/logger"
	"github.com/luckyspin-lab/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// A second pooled connection to :memory: would open its own empty
	// database. One connection also serializes concurrent transactions the
	// way a real server serializes conflicting row locks.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Spin: config.SpinConfigs{
			MaxReserveRetries:   3,
			RetryMaxJitter:      time.Millisecond,
			TransactionTimeout:  10 * time.Second,
			DefaultInitialSpins: 10,
			IdempotencyTTL:      time.Hour,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(cfg.LogLevel))
	ctx = xcontext.WithDB(ctx, db)

	if err := migration.AutoMigrate(ctx); err != nil {
		panic(err)
	}

	return ctx
}
