package order

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/nhoyhub/orderhub/internal/entity"
)

func insert(t *testing.T, r *Repository, name, udid, status string, createdAt time.Time) entity.Order {
	t.Helper()
	o := entity.Order{
		ID:        r.ReserveID(),
		Name:      name,
		UDID:      udid,
		ImageURL:  "/images/default.jpg",
		Status:    status,
		CreatedAt: createdAt,
	}
	if err := r.Insert(context.Background(), o); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return o
}

func TestCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	o := insert(t, r, "Widget $250", "udid-1", entity.StatusPending, time.Now())

	got, err := r.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Widget $250" {
		t.Fatalf("expected Widget $250, got %s", got.Name)
	}

	got.Status = entity.StatusApproved
	if err := r.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = r.GetByID(ctx, o.ID)
	if got.Status != entity.StatusApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}

	if err := r.Delete(ctx, o.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.GetByID(ctx, o.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	insert(t, r, "a", "u", entity.StatusPending, time.Now())

	if _, err := r.GetByID(ctx, 99); err != ErrNotFound {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if err := r.Update(ctx, entity.Order{ID: 99}); err != ErrNotFound {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := r.Delete(ctx, 99); err != ErrNotFound {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("failed delete must not touch the collection, len=%d", r.Len())
	}
}

func TestIDsStayUniqueAcrossDeletions(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	a := insert(t, r, "a", "u1", entity.StatusPending, time.Now())
	b := insert(t, r, "b", "u2", entity.StatusPending, time.Now())
	if b.ID != a.ID+1 {
		t.Fatalf("ids must increase: %d then %d", a.ID, b.ID)
	}

	if err := r.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c := insert(t, r, "c", "u3", entity.StatusPending, time.Now())
	if c.ID == b.ID || c.ID <= a.ID {
		t.Fatalf("id %d reused after deletion (existing %d)", c.ID, b.ID)
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	base := time.Now()
	insert(t, r, "oldest", "u1", entity.StatusPending, base.Add(-3*time.Hour))
	insert(t, r, "newest", "u2", entity.StatusPending, base)
	insert(t, r, "middle", "u3", entity.StatusPending, base.Add(-1*time.Hour))

	items, total, err := r.List(ctx, Query{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("expected 3/3, got %d/%d", len(items), total)
	}
	for i, want := range []string{"newest", "middle", "oldest"} {
		if items[i].Name != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, items[i].Name)
		}
	}
}

func TestListTieBreakKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	at := time.Now()
	insert(t, r, "first", "u1", entity.StatusPending, at)
	insert(t, r, "second", "u2", entity.StatusPending, at)

	items, _, err := r.List(ctx, Query{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items[0].Name != "first" || items[1].Name != "second" {
		t.Fatalf("ties must keep insertion order, got %s then %s", items[0].Name, items[1].Name)
	}
}

func TestListStatusFilter(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	insert(t, r, "a", "u1", entity.StatusApproved, time.Now())
	insert(t, r, "b", "u2", entity.StatusPending, time.Now())
	insert(t, r, "c", "u3", entity.StatusApproved, time.Now())

	items, total, err := r.List(ctx, Query{Status: "APPROVED", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 approved, got %d/%d", len(items), total)
	}
	for _, o := range items {
		if o.Status != entity.StatusApproved {
			t.Fatalf("unexpected status %s", o.Status)
		}
	}

	// An unrecognized status applies no filter at all.
	_, total, err = r.List(ctx, Query{Status: "shipped", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("unknown status must return the unfiltered set, got total=%d", total)
	}
}

func TestListSearch(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	insert(t, r, "Alpha Case", "device-abc", entity.StatusPending, time.Now())
	insert(t, r, "Beta Case", "device-xyz", entity.StatusPending, time.Now())
	insert(t, r, "Gamma", "has-ABC-inside", entity.StatusPending, time.Now())

	items, total, err := r.List(ctx, Query{Search: "abc", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 matches for abc, got %d/%d", len(items), total)
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	base := time.Now()
	for i := 1; i <= 25; i++ {
		insert(t, r, "item", "u", entity.StatusPending, base.Add(-time.Duration(i)*time.Hour))
	}

	items, total, err := r.List(ctx, Query{Page: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 25 {
		t.Fatalf("expected total 25, got %d", total)
	}
	if len(items) != 5 {
		t.Fatalf("page 3 of 25 at size 10 must hold 5 items, got %d", len(items))
	}

	items, total, err = r.List(ctx, Query{Page: 7, PageSize: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 || total != 25 {
		t.Fatalf("page past the end must be empty with the true total, got %d/%d", len(items), total)
	}
}

func TestListHugePageStaysEmpty(t *testing.T) {
	ctx := context.Background()
	r := NewRepository()
	base := time.Now()
	for i := 1; i <= 25; i++ {
		insert(t, r, "item", "u", entity.StatusPending, base.Add(-time.Duration(i)*time.Hour))
	}

	// The page*size offset must not wrap around for extreme page numbers.
	for _, page := range []int{math.MaxInt, math.MaxInt - 1, math.MaxInt / 2} {
		items, total, err := r.List(ctx, Query{Page: page, PageSize: 100})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if len(items) != 0 || total != 25 {
			t.Fatalf("page %d must be empty with the true total, got %d/%d", page, len(items), total)
		}
	}
}
