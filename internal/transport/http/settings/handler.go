package settings

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nhoyhub/orderhub/internal/auth"
	"github.com/nhoyhub/orderhub/internal/dto"
	"github.com/nhoyhub/orderhub/internal/presentation/http/response"
	settingsrepo "github.com/nhoyhub/orderhub/internal/repository/settings"
	service "github.com/nhoyhub/orderhub/internal/service/settings"
	"github.com/nhoyhub/orderhub/pkg/errorbank"
)

// Handler exposes the admin configuration endpoints.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs a settings Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the config routes; the whole group is admin-only.
func Register(e *echo.Echo, h *Handler, gate *auth.Gate) {
	g := e.Group("/config", gate.Middleware())
	g.GET("", h.all)
	g.PUT("/public", h.updatePublic)
	g.PUT("/esign/:index", h.updateEsign)
}

func (h *Handler) all(c echo.Context) error {
	b := response.New(c)

	values, err := h.svc.All(c.Request().Context())
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(values).Build()
}

func (h *Handler) updatePublic(c echo.Context) error {
	b := response.New(c)

	var payload dto.PublicImageUpdate
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.PublicImageURL == nil {
		return b.WithError(errorbank.BadRequest("missing public_image_url field")).Build()
	}

	if err := h.svc.SetPublicImageURL(c.Request().Context(), *payload.PublicImageURL); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(echo.Map{
		"message":                   "Public image URL updated",
		settingsrepo.KeyPublicImage: *payload.PublicImageURL,
	}).Build()
}

func (h *Handler) updateEsign(c echo.Context) error {
	b := response.New(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid esign index", errorbank.WithCause(err))).Build()
	}

	var payload dto.EsignUpdate
	if err := c.Bind(&payload); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if payload.URL == nil {
		return b.WithError(errorbank.BadRequest("missing url field")).Build()
	}

	if err := h.svc.SetEsignURL(c.Request().Context(), index, *payload.URL); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(echo.Map{
		"message":                    fmt.Sprintf("Esign image %d updated", index),
		settingsrepo.EsignKey(index): *payload.URL,
	}).Build()
}
