package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/middleware"
	"github.com/99minutos/backoffice/internal/core/domain"
)

// currentSession returns the session injected by the Guard or Auth
// middleware. Its absence means the route was wired without one of them.
func currentSession(c echo.Context) (*domain.Session, error) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return sess, nil
}
