package metrics

import "go.uber.org/fx"

// Module wires the metrics collector for dependency injection.
var Module = fx.Provide(New)
