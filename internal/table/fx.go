package table

import (
	"github.com/thirdpole/pos/internal/table/service"
	"go.uber.org/fx"
)

var Module = fx.Module("table.service",
	fx.Provide(service.NewService),
)
