package session

import (
	"github.com/thirdpole/pos/internal/session/service"
	"go.uber.org/fx"
)

var Module = fx.Module("session.manager",
	fx.Provide(service.NewManager),
)
