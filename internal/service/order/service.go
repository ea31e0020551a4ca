package order

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/nhoyhub/orderhub/internal/config"
	"github.com/nhoyhub/orderhub/internal/entity"
	repo "github.com/nhoyhub/orderhub/internal/repository/order"
	"github.com/nhoyhub/orderhub/internal/storage"
	"github.com/nhoyhub/orderhub/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/nhoyhub/orderhub/service/order")

const (
	maxNameLen = 100
	maxUDIDLen = 50
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderhub_orders_created_total",
		Help: "Number of orders created.",
	})
	ordersUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderhub_orders_updated_total",
		Help: "Number of orders updated.",
	})
	ordersDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orderhub_orders_deleted_total",
		Help: "Number of orders deleted.",
	})
)

// CreateInput carries the public order submission.
type CreateInput struct {
	Name      string
	UDID      string
	ImageName string
	Image     io.Reader
}

// UpdateInput carries the admin edit. All listed fields replace the stored
// ones unconditionally; the image is only replaced when a new one is supplied.
type UpdateInput struct {
	Name         string
	UDID         string
	Status       string
	DownloadLink string
	ImageName    string
	Image        io.Reader
}

// ListInput carries the listing query before normalization.
type ListInput struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// ListResult bundles a page of orders with the filtered total and the
// normalized paging values actually applied.
type ListResult struct {
	Items    []entity.Order
	Total    int
	Page     int
	PageSize int
}

// Service encapsulates business logic around orders.
type Service struct {
	repo            *repo.Repository
	images          *storage.Store
	logger          *zap.Logger
	defaultPageSize int
	maxPageSize     int
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Images     *storage.Store
	Config     config.Config
	Logger     *zap.Logger
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:            p.Repository,
		images:          p.Images,
		logger:          p.Logger,
		defaultPageSize: p.Config.Orders.DefaultPageSize,
		maxPageSize:     p.Config.Orders.MaxPageSize,
	}
}

// Create stores the uploaded image, then appends a new pending order. The id
// is reserved before the image write so the generated filename can carry it;
// a failed insert after a successful write leaves the file orphaned, which is
// accepted.
func (s *Service) Create(ctx context.Context, in CreateInput) (entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create")
	defer span.End()

	if err := validateNameUDID(in.Name, in.UDID); err != nil {
		return entity.Order{}, err
	}
	if in.Image == nil || in.ImageName == "" {
		return entity.Order{}, errorbank.BadRequest("image file is required")
	}

	id := s.repo.ReserveID()
	span.SetAttributes(attribute.Int64("order.id", id))

	imageURL, err := s.images.Save(ctx, id, in.ImageName, in.Image)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "image write failed")
		return entity.Order{}, errorbank.Internal("could not save uploaded file", errorbank.WithCause(err))
	}

	order := entity.Order{
		ID:        id,
		Name:      in.Name,
		UDID:      in.UDID,
		ImageURL:  imageURL,
		Status:    entity.StatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return entity.Order{}, errorbank.Internal("failed to create order", errorbank.WithCause(err))
	}

	ordersCreated.Inc()
	s.logger.Info("order created", zap.Int64("id", order.ID), zap.String("udid", order.UDID))
	return order, nil
}

// Get retrieves an order by id.
func (s *Service) Get(ctx context.Context, id int64) (entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.Order{}, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return entity.Order{}, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}
	return order, nil
}

// List returns one page of orders with paging clamped to sane bounds: page
// floors at 1, a non-positive page size falls back to the default, and the
// size is capped at the configured maximum.
func (s *Service) List(ctx context.Context, in ListInput) (ListResult, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize <= 0 {
		in.PageSize = s.defaultPageSize
	}
	if in.PageSize > s.maxPageSize {
		in.PageSize = s.maxPageSize
	}

	items, total, err := s.repo.List(ctx, repo.Query{
		Status:   in.Status,
		Search:   in.Search,
		Page:     in.Page,
		PageSize: in.PageSize,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return ListResult{}, errorbank.Internal("failed to list orders", errorbank.WithCause(err))
	}

	return ListResult{Items: items, Total: total, Page: in.Page, PageSize: in.PageSize}, nil
}

// Update overwrites an order's editable fields. The status must be one of the
// three known values; an empty download link clears the stored one; the image
// is rewritten only when a new upload is attached.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Update", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := validateNameUDID(in.Name, in.UDID); err != nil {
		return entity.Order{}, err
	}
	if !entity.KnownStatus(in.Status) {
		return entity.Order{}, errorbank.BadRequest("status must be pending, approved, or rejected")
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.Order{}, errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return entity.Order{}, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	if in.Image != nil && in.ImageName != "" {
		imageURL, err := s.images.Save(ctx, id, in.ImageName, in.Image)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "image write failed")
			return entity.Order{}, errorbank.Internal("could not save uploaded file", errorbank.WithCause(err))
		}
		order.ImageURL = imageURL
	}

	order.Name = in.Name
	order.UDID = in.UDID
	order.Status = strings.ToLower(in.Status)
	if in.DownloadLink == "" {
		order.DownloadLink = nil
	} else {
		link := in.DownloadLink
		order.DownloadLink = &link
	}

	if err := s.repo.Update(ctx, order); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return entity.Order{}, errorbank.Internal("failed to update order", errorbank.WithCause(err))
	}

	ordersUpdated.Inc()
	s.logger.Info("order updated", zap.Int64("id", id), zap.String("status", order.Status))
	return order, nil
}

// Delete removes an order permanently. Other orders keep their ids.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errorbank.NotFound("order not found")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return errorbank.Internal("failed to delete order", errorbank.WithCause(err))
	}

	ordersDeleted.Inc()
	s.logger.Info("order deleted", zap.Int64("id", id))
	return nil
}

func validateNameUDID(name, udid string) error {
	if name == "" {
		return errorbank.BadRequest("name is required")
	}
	if len(name) > maxNameLen {
		return errorbank.BadRequest("name exceeds 100 characters")
	}
	if udid == "" {
		return errorbank.BadRequest("udid is required")
	}
	if len(udid) > maxUDIDLen {
		return errorbank.BadRequest("udid exceeds 50 characters")
	}
	return nil
}
