package ports

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// SignInInput carries raw credentials from the transport layer.
type SignInInput struct {
	Email    string
	Password string
	RemoteIP string
}

// SignInResult is returned after a session has been issued.
type SignInResult struct {
	Token      string
	Session    *domain.Session
	RedirectTo string
}

// ListPrincipalsResult is a page of principals.
type ListPrincipalsResult struct {
	Items      []*domain.Principal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AuthService defines the authentication use cases of the backoffice.
type AuthService interface {
	SignIn(ctx context.Context, in SignInInput) (*SignInResult, error)
	SignUp(ctx context.Context, draft domain.SignUpDraft) (*domain.Principal, error)
	SignOut(ctx context.Context, token string) error
	Session(ctx context.Context, token string) (*domain.Session, error)
	RequestPasswordReset(ctx context.Context, email, remoteIP string) error
}

// DirectoryService exposes the principal listing used by user management.
type DirectoryService interface {
	ListPrincipals(ctx context.Context, filter ListPrincipalsFilter) (*ListPrincipalsResult, error)
}
