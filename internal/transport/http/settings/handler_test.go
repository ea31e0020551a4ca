package settings

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/nhoyhub/orderhub/internal/auth"
	"github.com/nhoyhub/orderhub/internal/config"
	settingsrepo "github.com/nhoyhub/orderhub/internal/repository/settings"
	service "github.com/nhoyhub/orderhub/internal/service/settings"
)

const testToken = "test-admin-token"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Config{Auth: config.Auth{Username: "admin", Password: "pw", Token: testToken}}
	svc := service.NewService(settingsrepo.NewRepository(), zap.NewNop())

	e := echo.New()
	Register(e, NewHandler(svc), auth.NewGate(cfg))
	return e
}

func doJSON(e *echo.Echo, method, target, payload, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestConfigRequiresAuth(t *testing.T) {
	e := newTestServer(t)

	if rec := doJSON(e, http.MethodGet, "/config", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("get: expected 401, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPut, "/config/public", `{"public_image_url":"x"}`, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("put: expected 401, got %d", rec.Code)
	}
}

func TestGetConfig(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/config", "", testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var values map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(values) != 6 {
		t.Fatalf("expected 6 keys, got %d", len(values))
	}
	for _, key := range []string{"public_image_url", "esign_image_1", "esign_image_5"} {
		if _, ok := values[key]; !ok {
			t.Fatalf("missing key %s", key)
		}
	}
}

func TestUpdatePublicImage(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPut, "/config/public", `{}`, testToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing field: expected 400, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPut, "/config/public", `{"public_image_url":"http://x/pub.png"}`, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/config", "", testToken)
	var values map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values["public_image_url"] != "http://x/pub.png" {
		t.Fatalf("public url not updated: %s", values["public_image_url"])
	}
}

func TestUpdateEsign(t *testing.T) {
	e := newTestServer(t)

	for _, target := range []string{"/config/esign/0", "/config/esign/6", "/config/esign/abc"} {
		rec := doJSON(e, http.MethodPut, target, `{"url":"http://x"}`, testToken)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}

	rec := doJSON(e, http.MethodPut, "/config/esign/2", `{}`, testToken)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing url: expected 400, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPut, "/config/esign/2", `{"url":"http://x/sign2.png"}`, testToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/config", "", testToken)
	var values map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &values); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if values["esign_image_2"] != "http://x/sign2.png" {
		t.Fatalf("esign slot not updated: %s", values["esign_image_2"])
	}
}
