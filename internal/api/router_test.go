package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/backoffice/internal/api/handler"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubSessions map[string]*domain.Session

func (s stubSessions) Verify(_ context.Context, token string) (*domain.Session, error) {
	if sess, ok := s[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionNotFound
}

type stubAuth struct {
	sessions stubSessions
}

func (a *stubAuth) SignIn(_ context.Context, in ports.SignInInput) (*ports.SignInResult, error) {
	if in.Email != "admin@example.com" || in.Password != "s3cretpass" {
		return nil, domain.ErrInvalidCredentials
	}
	sess := a.sessions["admin-token"]
	return &ports.SignInResult{Token: "admin-token", Session: sess, RedirectTo: "/dashboard"}, nil
}

func (a *stubAuth) SignUp(_ context.Context, d domain.SignUpDraft) (*domain.Principal, error) {
	if d.Email == "taken@example.com" {
		return nil, domain.ErrEmailInUse
	}
	if d.Password != d.ConfirmPassword {
		return nil, domain.FieldErrors{"confirmPassword": "The password and confirm password fields must match."}
	}
	return &domain.Principal{ID: "p9", Email: d.Email, Role: d.Role}, nil
}

func (a *stubAuth) SignOut(context.Context, string) error { return nil }

func (a *stubAuth) Session(ctx context.Context, token string) (*domain.Session, error) {
	return a.sessions.Verify(ctx, token)
}

func (a *stubAuth) RequestPasswordReset(context.Context, string, string) error { return nil }

type stubDirectory struct{}

func (stubDirectory) ListPrincipals(_ context.Context, f ports.ListPrincipalsFilter) (*ports.ListPrincipalsResult, error) {
	return &ports.ListPrincipalsResult{
		Items: []*domain.Principal{{ID: "p1", Email: "admin@example.com", Role: domain.RoleAdmin, PasswordHash: "secret-hash"}},
		Total: 1, Page: 1, Limit: 20, TotalPages: 1,
	}, nil
}

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	sessions := stubSessions{
		"admin-token":  {ID: "s1", PrincipalID: "p1", Email: "admin@example.com", Role: domain.RoleAdmin, ExpiresAt: exp},
		"sender-token": {ID: "s2", PrincipalID: "p2", Email: "sender@example.com", Role: domain.RoleSender, ExpiresAt: exp},
	}
	reg := prometheus.NewRegistry()
	return NewRouter(Deps{
		Auth:       &stubAuth{sessions: sessions},
		Directory:  stubDirectory{},
		Sessions:   sessions,
		Cookie:     handler.CookieConfig{Name: "sid"},
		Checks:     []handler.DependencyCheck{{Name: "mongodb", Ping: func(context.Context) error { return nil }}},
		Log:        zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})
}

func do(e *echo.Echo, method, target, body string, setup ...func(*http.Request)) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, fn := range setup {
		fn(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func cookie(token string) func(*http.Request) {
	return func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "sid", Value: token}) }
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer "+token) }
}

// ---------------------------------------------------------------------------
// Route guard
// ---------------------------------------------------------------------------

func TestRouter_GuardedPages(t *testing.T) {
	e := newTestRouter(t)

	cases := []struct {
		path     string
		token    string
		wantCode int
		wantLoc  string
	}{
		{"/admin/users", "", http.StatusFound, "/auth/sign-in"},
		{"/admin/users", "sender-token", http.StatusFound, "/forbidden"},
		{"/admin/users", "admin-token", http.StatusOK, ""},
		{"/dashboard", "", http.StatusFound, "/auth/sign-in"},
		{"/dashboard", "admin-token", http.StatusOK, ""},
		{"/auth/sign-in", "admin-token", http.StatusFound, "/dashboard"},
		{"/auth/sign-up", "", http.StatusOK, ""},
		{"/forbidden", "", http.StatusForbidden, ""},
		{"/", "", http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s as %q", tc.path, tc.token), func(t *testing.T) {
			var setup []func(*http.Request)
			if tc.token != "" {
				setup = append(setup, cookie(tc.token))
			}
			rec := do(e, http.MethodGet, tc.path, "", setup...)
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantLoc, rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestRouter_AdminUsersHidesPasswordHash(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodGet, "/admin/users", "", cookie("admin-token"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}

// ---------------------------------------------------------------------------
// Auth API
// ---------------------------------------------------------------------------

func TestRouter_SignIn(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/sign-in", `{"email":"admin@example.com","password":"s3cretpass"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderSetCookie), "sid=admin-token")

	rec = do(e, http.MethodPost, "/api/auth/sign-in", `{"email":"admin@example.com","password":"wrongpass"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials!"}`, rec.Body.String())
}

func TestRouter_SignUpErrors(t *testing.T) {
	e := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/sign-up", `{"email":"taken@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"This email is already in use. Please try another."}`, rec.Body.String())

	rec = do(e, http.MethodPost, "/api/auth/sign-up", `{"email":"new@example.com","password":"a","confirmPassword":"b"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid fields!", body.Error)
	assert.Contains(t, body.Fields, "confirmPassword")
}

func TestRouter_SignUpStep(t *testing.T) {
	rec := do(newTestRouter(t), http.MethodPost, "/api/auth/sign-up/steps/role", `{"role":"CARRIER"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"step":"role","valid":true,"next":"personal"}`, rec.Body.String())
}

// ---------------------------------------------------------------------------
// Bearer API
// ---------------------------------------------------------------------------

func TestRouter_BearerAPI(t *testing.T) {
	e := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/me", "", bearer("bogus")).Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/me", "", bearer("sender-token")).Code)

	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/api/admin/principals", "", bearer("sender-token")).Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/api/admin/principals", "", bearer("admin-token")).Code)
}

func TestRouter_Operational(t *testing.T) {
	e := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health/ready", "").Code)

	do(e, http.MethodGet, "/", "")
	rec := do(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requests_total")
}

// ---------------------------------------------------------------------------
// Error handler
// ---------------------------------------------------------------------------

func TestHTTPErrorHandler(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid fields", domain.FieldErrors{"email": "Email is required"}, http.StatusUnprocessableEntity, "Invalid fields!"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials!"},
		{"email in use", domain.ErrEmailInUse, http.StatusConflict, "This email is already in use. Please try another."},
		{"auth failure", fmt.Errorf("%w: mongo down", domain.ErrAuthFailure), http.StatusInternalServerError, "An error occurred!"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Access forbidden"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "Authentication required"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "An error occurred!"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			assert.Equal(t, tc.code, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.msg, body.Error)
			assert.NotContains(t, rec.Body.String(), "mongo")
		})
	}
}
