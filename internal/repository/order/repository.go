package order

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nhoyhub/orderhub/internal/entity"
)

var repoTracer = otel.Tracer("github.com/nhoyhub/orderhub/repository/order")

// ErrNotFound is returned when an order is missing.
var ErrNotFound = errors.New("order not found")

// Query captures the listing parameters. Status and Search may be empty;
// Page and PageSize are expected to be clamped by the caller.
type Query struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// Repository holds the process-wide order collection. A single mutex guards
// every operation so each create/update/delete is all-or-nothing even though
// request handlers run concurrently.
type Repository struct {
	mu     sync.Mutex
	orders []entity.Order
	nextID int64
}

// NewRepository constructs an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{}
}

// ReserveID hands out the next order id. The counter only ever moves forward,
// so ids stay unique even after deletions shrink the collection.
func (r *Repository) ReserveID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

// Insert appends a fully-populated order to the collection.
func (r *Repository) Insert(ctx context.Context, o entity.Order) error {
	_, span := repoTracer.Start(ctx, "OrderRepository.Insert", trace.WithAttributes(attribute.Int64("order.id", o.ID)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return nil
}

// GetByID fetches an order by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (entity.Order, error) {
	_, span := repoTracer.Start(ctx, "OrderRepository.GetByID", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	span.SetStatus(codes.Error, "not found")
	return entity.Order{}, ErrNotFound
}

// Update replaces the stored record carrying o.ID with o.
func (r *Repository) Update(ctx context.Context, o entity.Order) error {
	_, span := repoTracer.Start(ctx, "OrderRepository.Update", trace.WithAttributes(attribute.Int64("order.id", o.ID)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i] = o
			return nil
		}
	}
	span.SetStatus(codes.Error, "not found")
	return ErrNotFound
}

// Delete removes the order with the given id permanently.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, span := repoTracer.Start(ctx, "OrderRepository.Delete", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	span.SetStatus(codes.Error, "not found")
	return ErrNotFound
}

// List applies the status filter, then the substring search, sorts by
// creation time newest-first (ties keep insertion order), and returns the
// requested page plus the filtered-but-unpaged total. A page past the end
// yields an empty slice. An unrecognized status value applies no filter.
func (r *Repository) List(ctx context.Context, q Query) ([]entity.Order, int, error) {
	_, span := repoTracer.Start(ctx, "OrderRepository.List", trace.WithAttributes(
		attribute.String("query.status", q.Status),
		attribute.Int("query.page", q.Page),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := make([]entity.Order, 0, len(r.orders))
	status := strings.ToLower(q.Status)
	filterStatus := q.Status != "" && entity.KnownStatus(q.Status)
	search := strings.ToLower(q.Search)

	for _, o := range r.orders {
		if filterStatus && strings.ToLower(o.Status) != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Name), search) &&
			!strings.Contains(strings.ToLower(o.UDID), search) {
			continue
		}
		filtered = append(filtered, o)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := len(filtered)

	page := q.Page
	if page < 1 {
		page = 1
	}
	if q.PageSize <= 0 {
		return []entity.Order{}, total, nil
	}
	// Compare against the last populated page before multiplying: for huge
	// page values (page-1)*PageSize overflows into a negative offset.
	lastPage := (total + q.PageSize - 1) / q.PageSize
	if page > lastPage {
		return []entity.Order{}, total, nil
	}
	start := (page - 1) * q.PageSize
	end := start + q.PageSize
	if end > total {
		end = total
	}

	items := make([]entity.Order, end-start)
	copy(items, filtered[start:end])
	return items, total, nil
}

// Len reports the current collection size.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}
