package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nhoyhub/orderhub/internal/storage"
)

func newTestServer(t *testing.T, ready bool) (*echo.Echo, *storage.Store) {
	t.Helper()
	store := storage.New(t.TempDir(), "default.jpg", zap.NewNop())
	if ready {
		if err := store.EnsureReady(); err != nil {
			t.Fatalf("storage: %v", err)
		}
	}
	e := echo.New()
	Register(e, NewHandler(store))
	return e, store
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServeStoredImage(t *testing.T) {
	e, store := newTestServer(t, true)

	url, err := store.Save(context.Background(), 1, "photo.png", strings.NewReader("raw-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := get(e, url)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "raw-bytes" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/octet-stream" {
		t.Fatalf("expected octet-stream, got %s", ct)
	}
}

func TestServeFallsBackToPlaceholder(t *testing.T) {
	e, _ := newTestServer(t, true)

	rec := get(e, "/images/no-such-file.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected placeholder 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("placeholder body must not be empty")
	}
}

func TestServeNotFoundWithoutPlaceholder(t *testing.T) {
	e, _ := newTestServer(t, false)

	rec := get(e, "/images/no-such-file.png")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
