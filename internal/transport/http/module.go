package http

import (
	"go.uber.org/fx"

	authtransport "github.com/nhoyhub/orderhub/internal/transport/http/auth"
	imagetransport "github.com/nhoyhub/orderhub/internal/transport/http/image"
	ordertransport "github.com/nhoyhub/orderhub/internal/transport/http/order"
	settingstransport "github.com/nhoyhub/orderhub/internal/transport/http/settings"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	authtransport.Module,
	imagetransport.Module,
	ordertransport.Module,
	settingstransport.Module,
)
