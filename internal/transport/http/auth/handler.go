package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/nhoyhub/orderhub/internal/auth"
	"github.com/nhoyhub/orderhub/internal/dto"
	"github.com/nhoyhub/orderhub/internal/presentation/http/response"
)

// Handler exposes the login endpoint.
type Handler struct {
	gate *auth.Gate
}

// NewHandler constructs the auth Handler.
func NewHandler(gate *auth.Gate) *Handler {
	return &Handler{gate: gate}
}

// Register mounts the login route.
func Register(e *echo.Echo, h *Handler) {
	e.POST("/login", h.login)
}

func (h *Handler) login(c echo.Context) error {
	b := response.New(c)

	token, err := h.gate.Login(c.FormValue("username"), c.FormValue("password"))
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.TokenResponse{AccessToken: token, TokenType: "bearer"}).Build()
}
