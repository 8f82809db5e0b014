package ports

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// ListPrincipalsFilter carries the query parameters for listing principals.
type ListPrincipalsFilter struct {
	Role  domain.Role // empty = all roles
	Page  int         // 1-based
	Limit int         // capped by the service
}

// UserDirectory is the persistent store of principals and their role profiles.
type UserDirectory interface {
	// FindByEmail returns domain.ErrPrincipalNotFound when no principal has email.
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)

	// CreateWithProfile stores the principal and, in the same transaction,
	// its role profile (nil for roles without one). The profile's principal
	// ID is filled in by the store. Returns domain.ErrEmailInUse when the
	// email is already taken, including when a concurrent insert wins.
	CreateWithProfile(ctx context.Context, p *domain.Principal, profile ProfileBuilder) (*domain.Principal, error)

	// List returns a page of principals and the total count.
	List(ctx context.Context, filter ListPrincipalsFilter) ([]*domain.Principal, int64, error)
}

// ProfileBuilder produces the role profile once the principal ID is known.
type ProfileBuilder func(principalID string) domain.RoleProfile
