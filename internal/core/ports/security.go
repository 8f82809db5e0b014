package ports

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Compare returns false, nil on a mismatch and an error only when the
	// stored hash cannot be used.
	Compare(hash, plaintext string) (bool, error)
}

// SessionProvider issues, verifies and destroys session tokens.
type SessionProvider interface {
	Issue(ctx context.Context, p *domain.Principal) (string, *domain.Session, error)
	// Verify returns domain.ErrSessionNotFound for unknown, expired or
	// revoked tokens.
	Verify(ctx context.Context, token string) (*domain.Session, error)
	// Destroy revokes the session behind token. Unknown tokens are ignored.
	Destroy(ctx context.Context, token string) error
}

// SessionStore persists session records until they expire.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session) error
	// Get returns domain.ErrSessionNotFound when id is unknown or expired.
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}
