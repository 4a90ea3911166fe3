package backup

import (
	"github.com/thirdpole/pos/internal/backup/service"
	"go.uber.org/fx"
)

var Module = fx.Module("backup.service",
	fx.Provide(service.NewService),
)
