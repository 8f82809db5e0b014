package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
)

const sessionKey = "session"

// DefaultCookieName is the session cookie set at sign-in.
const DefaultCookieName = "backoffice_session"

// SessionVerifier resolves a session token.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Session, error)
}

// SessionFrom returns the session stored by Auth or Guard.
func SessionFrom(c echo.Context) (*domain.Session, bool) {
	sess, ok := c.Get(sessionKey).(*domain.Session)
	return sess, ok && sess != nil
}

func setSession(c echo.Context, sess *domain.Session) {
	c.Set(sessionKey, sess)
}

// BearerToken extracts the token of an "Authorization: Bearer" header.
func BearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// SessionToken returns the session cookie value, falling back to the
// bearer token.
func SessionToken(c echo.Context, cookieName string) string {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	return BearerToken(c)
}
