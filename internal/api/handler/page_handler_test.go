package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/validation"
)

func TestPageHandler_SignUpListsSteps(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	if err := NewPageHandler().SignUp(e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/sign-up", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	steps, ok := decode(t, rec)["steps"].([]any)
	if !ok || len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %v", steps)
	}
}

func TestPageHandler_Dashboard(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
	c.Set("session", &domain.Session{Email: "admin@example.com", Role: domain.RoleAdmin})

	if err := NewPageHandler().Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	links, _ := decode(t, rec)["links"].([]any)
	if len(links) != 2 {
		t.Fatalf("expected admin links, got %v", links)
	}
}

func TestPageHandler_DashboardWithoutSession(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), httptest.NewRecorder())
	if err := NewPageHandler().Dashboard(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestPrincipalHandler_List(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator(validation.New())
	stub := &stubDirectoryService{
		listFn: func(_ context.Context, f ports.ListPrincipalsFilter) (*ports.ListPrincipalsResult, error) {
			if f.Role != domain.RoleSender || f.Page != 2 || f.Limit != 5 {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return &ports.ListPrincipalsResult{Total: 6, Page: 2, Limit: 5, TotalPages: 2}, nil
		},
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/principals?page=2&limit=5&role=SENDER", nil), rec)
	if err := NewPrincipalHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decode(t, rec)
	if items, ok := resp["items"].([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty items array, got %v", resp["items"])
	}
	if resp["total_pages"] != float64(2) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestPrincipalHandler_List_InvalidQuery(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator(validation.New())
	h := NewPrincipalHandler(&stubDirectoryService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?role=DRIVER", nil), httptest.NewRecorder())
	var fe domain.FieldErrors
	if err := h.List(c); !errors.As(err, &fe) || fe["role"] == "" {
		t.Fatalf("expected role field error, got %v", err)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=4611686018427387904", nil), httptest.NewRecorder())
	fe = nil
	if err := h.List(c); !errors.As(err, &fe) || fe["page"] == "" {
		t.Fatalf("expected page field error, got %v", err)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/?page=abc", nil), httptest.NewRecorder())
	var he *echo.HTTPError
	if err := h.List(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestPrincipalHandler_Me(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/me", nil), rec)
	c.Set("session", &domain.Session{PrincipalID: "p1", Role: domain.RoleAdmin})

	if err := NewPrincipalHandler(nil).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if decode(t, rec)["principal_id"] != "p1" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestHealthDependencies_Readiness(t *testing.T) {
	e := echo.New()
	h := NewHealthDependenciesHandler(
		DependencyCheck{Name: "mongodb", Ping: func(context.Context) error { return nil }},
		DependencyCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("down") }},
	)
	rec := httptest.NewRecorder()
	if err := h.Readiness(e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if decode(t, rec)["status"] != "degraded" {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}
