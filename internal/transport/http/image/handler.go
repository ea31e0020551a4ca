package image

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/nhoyhub/orderhub/internal/presentation/http/response"
	"github.com/nhoyhub/orderhub/internal/storage"
	"github.com/nhoyhub/orderhub/pkg/errorbank"
)

// Handler serves stored image files.
type Handler struct {
	store *storage.Store
}

// NewHandler constructs an image Handler.
func NewHandler(store *storage.Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the public image route.
func Register(e *echo.Echo, h *Handler) {
	e.GET("/images/:filename", h.serve)
}

// serve streams the named file, or the placeholder when the name is absent.
// Bytes go out untyped regardless of what was uploaded.
func (h *Handler) serve(c echo.Context) error {
	path, err := h.store.Resolve(c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return response.New(c).WithError(errorbank.NotFound("image not found")).Build()
		}
		return response.New(c).WithError(err).Build()
	}

	f, err := os.Open(path)
	if err != nil {
		return response.New(c).WithError(errorbank.Internal("could not open image", errorbank.WithCause(err))).Build()
	}
	defer f.Close()

	return c.Stream(http.StatusOK, "application/octet-stream", f)
}
