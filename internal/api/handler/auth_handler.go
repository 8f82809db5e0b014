package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/api/middleware"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/wizard"
)

const resetRequestedMessage = "If the email is registered, you will receive reset instructions shortly."

// CookieConfig controls the session cookie written at sign-in.
type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

// AuthHandler serves the /api/auth endpoints.
type AuthHandler struct {
	authService ports.AuthService
	steps       wizard.StepValidator
	cookie      CookieConfig
	signInPath  string
}

func NewAuthHandler(authService ports.AuthService, steps wizard.StepValidator, cookie CookieConfig, signInPath string) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = middleware.DefaultCookieName
	}
	if signInPath == "" {
		signInPath = "/auth/sign-in"
	}
	return &AuthHandler{authService: authService, steps: steps, cookie: cookie, signInPath: signInPath}
}

// SignIn authenticates a backoffice principal and opens a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/sign-in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.SignIn(c.Request().Context(), ports.SignInInput{
		Email:    req.Email,
		Password: req.Password,
		RemoteIP: c.RealIP(),
	})
	if err != nil {
		return err
	}

	c.SetCookie(h.sessionCookie(res.Token, res.Session.ExpiresAt))
	return c.JSON(http.StatusOK, signInResponse{
		Token:      res.Token,
		RedirectTo: res.RedirectTo,
		Email:      res.Session.Email,
		Role:       res.Session.Role,
		ExpiresAt:  res.Session.ExpiresAt,
	})
}

// SignUp registers a SENDER or CARRIER principal.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.SignUpDraft  true  "Registration draft"
// @Success      201   {object}  signUpResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/sign-up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var draft domain.SignUpDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := h.authService.SignUp(c.Request().Context(), draft)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, signUpResponse{Message: domain.MsgSignUpSucceeded, Principal: p})
}

// ValidateStep checks the fields of one registration step.
//
// @Summary      Validate a sign-up step
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        step  path      string              true  "Step id (role, personal, business, finish)"
// @Param        body  body      domain.SignUpDraft  true  "Registration draft"
// @Success      200   {object}  stepResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/sign-up/steps/{step} [post]
func (h *AuthHandler) ValidateStep(c echo.Context) error {
	var draft domain.SignUpDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	info, err := wizard.ValidateStep(h.steps, c.Param("step"), draft)
	if errors.Is(err, wizard.ErrUnknownStep) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown step")
	}
	if err != nil {
		return err
	}

	resp := stepResponse{Step: info.ID, Valid: true}
	if info.Step < wizard.Finish {
		resp.Next = wizard.Steps()[info.Step+1].ID
	}
	return c.JSON(http.StatusOK, resp)
}

// SignOut revokes the current session and clears the cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  redirectResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/sign-out [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if token := middleware.SessionToken(c, h.cookie.Name); token != "" {
		if err := h.authService.SignOut(c.Request().Context(), token); err != nil {
			return err
		}
	}

	c.SetCookie(h.expiredCookie())
	return c.JSON(http.StatusOK, redirectResponse{RedirectTo: h.signInPath})
}

// ForgotPassword accepts a password reset request.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      202   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email, c.RealIP()); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: resetRequestedMessage})
}

func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Domain:   h.cookie.Domain,
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
