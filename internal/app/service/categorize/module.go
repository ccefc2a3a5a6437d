package categorize

import "go.uber.org/fx"

// Module exposes the categorization rule set via Fx.
var Module = fx.Options(
	fx.Provide(NewRuleSet),
)
