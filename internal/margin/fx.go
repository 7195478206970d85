package margin

import (
	"github.com/rxledger/rxledger/internal/margin/repository"
	"github.com/rxledger/rxledger/internal/margin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("margin.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
