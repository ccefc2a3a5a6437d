package banking

import "go.uber.org/fx"

// Module exposes the bank ledger service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
