package sale

import (
	"github.com/rxledger/rxledger/internal/sale/repository"
	"github.com/rxledger/rxledger/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
