package batch

import (
	"github.com/rxledger/rxledger/internal/batch/repository"
	"github.com/rxledger/rxledger/internal/batch/service"
	"go.uber.org/fx"
)

var Module = fx.Module("batch.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
