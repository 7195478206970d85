package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/rxledger/rxledger/internal/config"
	"github.com/rxledger/rxledger/internal/logger"
	"github.com/rxledger/rxledger/internal/migration"
	"github.com/rxledger/rxledger/internal/server"
	"github.com/rxledger/rxledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface and domain modules
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
