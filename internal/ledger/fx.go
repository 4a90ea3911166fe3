package ledger

import (
	"github.com/thirdpole/pos/internal/ledger/store"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.store",
	fx.Provide(store.NewStore),
)
