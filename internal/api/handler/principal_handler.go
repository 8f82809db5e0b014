package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// PrincipalHandler serves the user management endpoints.
type PrincipalHandler struct {
	directory ports.DirectoryService
}

func NewPrincipalHandler(directory ports.DirectoryService) *PrincipalHandler {
	return &PrincipalHandler{directory: directory}
}

// Me returns the caller's session.
//
// @Summary      Current session
// @Tags         principals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Session
// @Failure      401  {object}  errorResponse
// @Router       /api/me [get]
func (h *PrincipalHandler) Me(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sess)
}

// List returns a page of principals, newest first.
//
// @Summary      List principals
// @Tags         principals
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int     false  "Page number (default 1, max 100000)"
// @Param        limit  query     int     false  "Page size (default 20, max 100)"
// @Param        role   query     string  false  "Filter by role"  Enums(ADMIN, SENDER, CARRIER)
// @Success      200    {object}  listPrincipalsResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /api/admin/principals [get]
func (h *PrincipalHandler) List(c echo.Context) error {
	var q listPrincipalsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	res, err := h.directory.ListPrincipals(c.Request().Context(), ports.ListPrincipalsFilter{
		Role:  domain.Role(q.Role),
		Page:  q.Page,
		Limit: q.Limit,
	})
	if err != nil {
		return err
	}

	items := res.Items
	if items == nil {
		items = []*domain.Principal{}
	}
	return c.JSON(http.StatusOK, listPrincipalsResponse{
		Items:      items,
		Total:      res.Total,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}
