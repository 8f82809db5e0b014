package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/99minutos/backoffice/internal/core/domain"
)

type stubVerifier struct {
	sessions map[string]*domain.Session
	err      error
	calls    int
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*domain.Session, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func newVerifier() *stubVerifier {
	exp := time.Now().Add(time.Hour)
	return &stubVerifier{sessions: map[string]*domain.Session{
		"admin-token":   {ID: "s1", PrincipalID: "p1", Email: "admin@example.com", Role: domain.RoleAdmin, ExpiresAt: exp},
		"sender-token":  {ID: "s2", PrincipalID: "p2", Email: "sender@example.com", Role: domain.RoleSender, ExpiresAt: exp},
		"carrier-token": {ID: "s3", PrincipalID: "p3", Email: "carrier@example.com", Role: domain.RoleCarrier, ExpiresAt: exp},
	}}
}

var errRedisDown = errors.New("redis: connection refused")
