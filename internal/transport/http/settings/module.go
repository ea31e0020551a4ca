package settings

import (
	"go.uber.org/fx"

	"github.com/labstack/echo/v4"

	"github.com/nhoyhub/orderhub/internal/auth"
)

// Module wires the settings handlers.
var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(func(e *echo.Echo, h *Handler, gate *auth.Gate) {
		Register(e, h, gate)
	}),
)
