package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/wizard"
)

// PageHandler serves the page descriptors behind the guarded routes. The
// backoffice UI renders them; this service only decides what is reachable.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home is the public landing page.
func (h *PageHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "home", Action: "/auth/sign-in"})
}

// SignIn describes the sign-in form.
func (h *PageHandler) SignIn(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:   "sign-in",
		Action: "/api/auth/sign-in",
		Fields: []string{"email", "password"},
	})
}

// SignUp describes the registration wizard.
func (h *PageHandler) SignUp(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:   "sign-up",
		Action: "/api/auth/sign-up",
		Steps:  wizard.Steps(),
	})
}

// ForgotPassword describes the password reset form.
func (h *PageHandler) ForgotPassword(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:   "forgot-password",
		Action: "/api/auth/forgot-password",
		Fields: []string{"email"},
	})
}

// Forbidden is where the guard sends sessions lacking the required role.
func (h *PageHandler) Forbidden(c echo.Context) error {
	return c.JSON(http.StatusForbidden, errorResponse{Error: domain.MsgForbidden})
}

// Dashboard is the default landing route after sign-in.
func (h *PageHandler) Dashboard(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	links := []string{"/dashboard"}
	if sess.HasRole(domain.RoleAdmin) {
		links = append(links, "/admin/users")
	}
	return c.JSON(http.StatusOK, dashboardResponse{Session: sess, Links: links})
}
