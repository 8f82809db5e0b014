package middleware

import (
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/guard"
	"github.com/99minutos/backoffice/internal/pkg/metrics"
)

// GuardConfig configures the route guard middleware.
type GuardConfig struct {
	Skipper    echomiddleware.Skipper
	Guard      *guard.Guard
	Sessions   SessionVerifier
	CookieName string
	Logger     zerolog.Logger
}

var staticExt = map[string]struct{}{
	".css": {}, ".js": {}, ".map": {}, ".png": {}, ".jpg": {}, ".jpeg": {},
	".gif": {}, ".svg": {}, ".ico": {}, ".webp": {}, ".woff": {}, ".woff2": {},
}

// GuardSkipper returns the default matcher: everything under /api except
// the auth prefix, the operational endpoints and static assets bypass
// the guard.
func GuardSkipper(apiAuthPrefix string) echomiddleware.Skipper {
	return func(c echo.Context) bool {
		p := c.Request().URL.Path
		switch {
		case apiAuthPrefix != "" && (p == apiAuthPrefix || strings.HasPrefix(p, apiAuthPrefix+"/")):
			return false
		case p == "/api" || strings.HasPrefix(p, "/api/"),
			p == "/metrics",
			p == "/health" || strings.HasPrefix(p, "/health/"),
			strings.HasPrefix(p, "/swagger/"),
			strings.HasPrefix(p, "/static/"):
			return true
		}
		_, ok := staticExt[strings.ToLower(path.Ext(p))]
		return ok
	}
}

// Guard redirects every request according to its route class and the
// caller's session. It never fails the request: a session that cannot be
// verified counts as no session.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.Guard == nil {
		cfg.Guard = guard.New(guard.DefaultTable())
	}
	if cfg.Skipper == nil {
		cfg.Skipper = GuardSkipper(cfg.Guard.Table().APIAuthPrefix)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			var sess *domain.Session
			if token := SessionToken(c, cfg.CookieName); token != "" && cfg.Sessions != nil {
				s, err := cfg.Sessions.Verify(c.Request().Context(), token)
				switch {
				case err == nil:
					sess = s
				case !errors.Is(err, domain.ErrSessionNotFound):
					cfg.Logger.Warn().Err(err).Str("path", c.Request().URL.Path).Msg("session verification failed")
				}
			}

			d := cfg.Guard.Decide(c.Request().URL.Path, sess)
			metrics.GuardDecisionsTotal.WithLabelValues(string(d.Class), string(d.Action)).Inc()

			if d.Action != guard.ActionContinue {
				return c.Redirect(http.StatusFound, d.Redirect)
			}
			if sess != nil {
				setSession(c, sess)
			}
			return next(c)
		}
	}
}
