package auth

import "go.uber.org/fx"

// Module provides the auth gate to Fx.
var Module = fx.Provide(NewGate)
