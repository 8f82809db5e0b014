package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionClaims are the JWT claims of a session token. The role travels in
// the token, but the stored session is authoritative.
type SessionClaims struct {
	Role  domain.Role `json:"role"`
	Email string      `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenSessions implements ports.SessionProvider with HS256 tokens whose ID
// points at a record in a SessionStore, so tokens can be revoked.
type TokenSessions struct {
	secret []byte
	ttl    time.Duration
	store  ports.SessionStore
	now    func() time.Time
}

func NewTokenSessions(secret string, ttl time.Duration, store ports.SessionStore) *TokenSessions {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &TokenSessions{secret: []byte(secret), ttl: ttl, store: store, now: time.Now}
}

func (t *TokenSessions) Issue(ctx context.Context, p *domain.Principal) (string, *domain.Session, error) {
	now := t.now()
	sess := domain.Session{
		ID:          uuid.NewString(),
		PrincipalID: p.ID,
		Email:       p.Email,
		Name:        p.Name,
		Role:        p.Role,
		ExpiresAt:   now.Add(t.ttl).UTC().Truncate(time.Second),
	}

	claims := SessionClaims{
		Role:  p.Role,
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := t.store.Save(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	return signed, &sess, nil
}

func (t *TokenSessions) Verify(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := t.parse(token, jwt.WithExpirationRequired(), jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, domain.ErrSessionNotFound
	}

	sess, err := t.store.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.PrincipalID != claims.Subject || sess.Expired(t.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (t *TokenSessions) Destroy(ctx context.Context, token string) error {
	// Expired tokens may still be signed out.
	claims, err := t.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := t.store.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (t *TokenSessions) parse(token string, opts ...jwt.ParserOption) (*SessionClaims, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, opts...)
	if err != nil || !tkn.Valid || claims.ID == "" {
		return nil, domain.ErrSessionNotFound
	}
	return claims, nil
}
