package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	cases := []struct {
		name string
		sess *domain.Session
		want int
	}{
		{"admin allowed", &domain.Session{Role: domain.RoleAdmin}, http.StatusOK},
		{"sender forbidden", &domain.Session{Role: domain.RoleSender}, http.StatusForbidden},
		{"no session", nil, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/admin/principals", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.sess != nil {
				setSession(c, tc.sess)
			}

			handler := RBAC(domain.RoleAdmin)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
