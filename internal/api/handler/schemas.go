package handler

import (
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/wizard"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// --- Auth ---

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token      string      `json:"token"`
	RedirectTo string      `json:"redirect_to"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	ExpiresAt  time.Time   `json:"expires_at"`
}

type signUpResponse struct {
	Message   string            `json:"message"`
	Principal *domain.Principal `json:"principal"`
}

type stepResponse struct {
	Step  string `json:"step"`
	Valid bool   `json:"valid"`
	Next  string `json:"next,omitempty"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type redirectResponse struct {
	RedirectTo string `json:"redirect_to"`
}

// --- Pages ---

type pageResponse struct {
	Page   string            `json:"page"`
	Action string            `json:"action,omitempty"`
	Fields []string          `json:"fields,omitempty"`
	Steps  []wizard.StepInfo `json:"steps,omitempty"`
}

type dashboardResponse struct {
	Session *domain.Session `json:"session"`
	Links   []string        `json:"links"`
}

// --- Principals ---

type listPrincipalsQuery struct {
	Page  int    `query:"page"  validate:"gte=0,lte=100000"`
	Limit int    `query:"limit" validate:"gte=0,lte=100"`
	Role  string `query:"role"  validate:"omitempty,oneof=ADMIN SENDER CARRIER"`
}

type listPrincipalsResponse struct {
	Items      []*domain.Principal `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
}
