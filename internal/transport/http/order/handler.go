package order

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nhoyhub/orderhub/internal/auth"
	"github.com/nhoyhub/orderhub/internal/dto"
	"github.com/nhoyhub/orderhub/internal/presentation/http/response"
	service "github.com/nhoyhub/orderhub/internal/service/order"
	"github.com/nhoyhub/orderhub/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/nhoyhub/orderhub/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the order routes. Create and list are public; everything
// keyed by id is admin-only.
func Register(e *echo.Echo, h *Handler, gate *auth.Gate) {
	g := e.Group("/orders")
	g.POST("", h.create)
	g.GET("", h.list)

	admin := gate.Middleware()
	g.GET("/:id", h.getByID, admin)
	g.PUT("/:id", h.update, admin)
	g.DELETE("/:id", h.delete, admin)
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create")
	defer span.End()

	file, src, err := openUpload(c)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return b.WithError(errorbank.BadRequest("image file is required")).Build()
		}
		return b.WithError(err).Build()
	}
	defer src.Close()

	order, err := h.svc.Create(ctx, service.CreateInput{
		Name:      c.FormValue("name"),
		UDID:      c.FormValue("udid"),
		ImageName: file.Filename,
		Image:     src,
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusCreated).WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	res, err := h.svc.List(c.Request().Context(), service.ListInput{
		Status:   c.QueryParam("status"),
		Search:   c.QueryParam("q"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 0),
	})
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(toListDTO(res)).Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) update(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	// A re-uploaded image is optional on update, but a part that is present
	// and broken must not silently keep the old image. Opened before the
	// field reads: FormValue swallows the multipart parse error.
	var in service.UpdateInput
	file, src, err := openUpload(c)
	switch {
	case err == nil:
		defer src.Close()
		in.ImageName = file.Filename
		in.Image = src
	case errors.Is(err, http.ErrMissingFile):
		// no re-upload attached
	default:
		return b.WithError(err).Build()
	}

	in.Name = c.FormValue("name")
	in.UDID = c.FormValue("udid")
	in.Status = c.FormValue("status")
	in.DownloadLink = c.FormValue("download_link")

	order, err := h.svc.Update(ctx, id, in)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(dto.NewOrderResponse(order)).Build()
}

func (h *Handler) delete(c echo.Context) error {
	b := response.New(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return b.WithError(errorbank.BadRequest("invalid id", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := h.svc.Delete(ctx, id); err != nil {
		return b.WithError(err).Build()
	}

	return b.WithStatus(http.StatusNoContent).Build()
}

// openUpload pulls the image part out of the request. An absent part comes
// back as http.ErrMissingFile so callers can treat it as optional; a part
// the client sent broken is a bad request, while a part we fail to open on
// our side is an internal error.
func openUpload(c echo.Context) (*multipart.FileHeader, multipart.File, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, http.ErrMissingFile
		}
		return nil, nil, errorbank.BadRequest("malformed image upload", errorbank.WithCause(err))
	}
	src, err := file.Open()
	if err != nil {
		return nil, nil, errorbank.Internal("could not read uploaded image", errorbank.WithCause(err))
	}
	return file, src, nil
}

func queryInt(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func toListDTO(res service.ListResult) dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(res.Items))
	for _, o := range res.Items {
		items = append(items, dto.NewOrderResponse(o))
	}
	return dto.OrderListResponse{
		Items:    items,
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
	}
}
