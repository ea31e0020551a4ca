package order

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nhoyhub/orderhub/internal/config"
	"github.com/nhoyhub/orderhub/internal/entity"
	"github.com/nhoyhub/orderhub/internal/pricing"
	repo "github.com/nhoyhub/orderhub/internal/repository/order"
	"github.com/nhoyhub/orderhub/internal/storage"
	"github.com/nhoyhub/orderhub/pkg/errorbank"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	images := storage.New(t.TempDir(), "default.jpg", zap.NewNop())
	if err := images.EnsureReady(); err != nil {
		t.Fatalf("storage: %v", err)
	}
	return NewService(Params{
		Repository: repo.NewRepository(),
		Images:     images,
		Config: config.Config{Orders: config.Orders{
			DefaultPageSize: 12,
			MaxPageSize:     100,
		}},
		Logger: zap.NewNop(),
	})
}

func create(t *testing.T, s *Service, name, udid string) entity.Order {
	t.Helper()
	order, err := s.Create(context.Background(), CreateInput{
		Name:      name,
		UDID:      udid,
		ImageName: "upload.jpg",
		Image:     strings.NewReader("image-bytes"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return order
}

func TestCreateDefaults(t *testing.T) {
	s := newTestService(t)
	order := create(t, s, "Case $999", "u1")

	if order.Status != entity.StatusPending {
		t.Fatalf("new orders must be pending, got %s", order.Status)
	}
	if order.DownloadLink != nil {
		t.Fatalf("new orders must have no download link")
	}
	if !strings.HasPrefix(order.ImageURL, "/images/order_1_") {
		t.Fatalf("unexpected image url %s", order.ImageURL)
	}
	if got := pricing.FromName(order.Name); got != "999" {
		t.Fatalf("derived price: expected 999, got %s", got)
	}
}

func TestCreateValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"missing name", CreateInput{UDID: "u", ImageName: "f", Image: strings.NewReader("x")}},
		{"missing udid", CreateInput{Name: "n", ImageName: "f", Image: strings.NewReader("x")}},
		{"missing image", CreateInput{Name: "n", UDID: "u"}},
		{"long name", CreateInput{Name: strings.Repeat("a", 101), UDID: "u", ImageName: "f", Image: strings.NewReader("x")}},
		{"long udid", CreateInput{Name: "n", UDID: strings.Repeat("a", 51), ImageName: "f", Image: strings.NewReader("x")}},
	}
	for _, c := range cases {
		_, err := s.Create(ctx, c.in)
		if errorbank.From(err).Kind() != errorbank.KindBadRequest {
			t.Fatalf("%s: expected bad_request, got %v", c.name, err)
		}
	}
}

func TestLifecycleScenario(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	order := create(t, s, "Case $999", "u1")

	updated, err := s.Update(ctx, order.ID, UpdateInput{
		Name:         "Case $999",
		UDID:         "u1",
		Status:       "approved",
		DownloadLink: "http://x/1",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != entity.StatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if updated.DownloadLink == nil || *updated.DownloadLink != "http://x/1" {
		t.Fatalf("download link not set")
	}
	if got := pricing.FromName(updated.Name); got != "999" {
		t.Fatalf("price must survive an update that keeps the name, got %s", got)
	}
	if updated.ImageURL != order.ImageURL {
		t.Fatalf("image must not change without a re-upload")
	}

	if err := s.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, order.ID); errorbank.From(err).Kind() != errorbank.KindNotFound {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	s := newTestService(t)
	order := create(t, s, "Case", "u1")

	_, err := s.Update(context.Background(), order.ID, UpdateInput{
		Name:   "Case",
		UDID:   "u1",
		Status: "shipped",
	})
	if errorbank.From(err).Kind() != errorbank.KindBadRequest {
		t.Fatalf("expected bad_request for unknown status, got %v", err)
	}
}

func TestUpdateNormalizesStatusCase(t *testing.T) {
	s := newTestService(t)
	order := create(t, s, "Case", "u1")

	updated, err := s.Update(context.Background(), order.ID, UpdateInput{
		Name:   "Case",
		UDID:   "u1",
		Status: "Approved",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != entity.StatusApproved {
		t.Fatalf("status must be stored lowercase, got %s", updated.Status)
	}
}

func TestUpdateReplacesImageWhenSupplied(t *testing.T) {
	s := newTestService(t)
	order := create(t, s, "Case", "u1")

	updated, err := s.Update(context.Background(), order.ID, UpdateInput{
		Name:      "Case",
		UDID:      "u1",
		Status:    "pending",
		ImageName: "new.png",
		Image:     strings.NewReader("new-bytes"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ImageURL == order.ImageURL {
		t.Fatalf("image url must change on re-upload")
	}
	if !strings.HasSuffix(updated.ImageURL, "_new.png") {
		t.Fatalf("unexpected image url %s", updated.ImageURL)
	}
}

func TestListClampsPaging(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		create(t, s, "Item", "u")
	}

	res, err := s.List(ctx, ListInput{Page: -5, PageSize: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 || res.PageSize != 12 {
		t.Fatalf("expected clamped page=1 size=12, got %d/%d", res.Page, res.PageSize)
	}
	if res.Total != 3 || len(res.Items) != 3 {
		t.Fatalf("expected all 3 orders, got %d/%d", len(res.Items), res.Total)
	}

	res, err = s.List(ctx, ListInput{Page: 1, PageSize: 5000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.PageSize != 100 {
		t.Fatalf("page size must cap at 100, got %d", res.PageSize)
	}
}
