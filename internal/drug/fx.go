package drug

import (
	"github.com/rxledger/rxledger/internal/drug/repository"
	"github.com/rxledger/rxledger/internal/drug/service"
	"go.uber.org/fx"
)

var Module = fx.Module("drug.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
