package handler

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

type stubAuthService struct {
	signInFn  func(ctx context.Context, in ports.SignInInput) (*ports.SignInResult, error)
	signUpFn  func(ctx context.Context, d domain.SignUpDraft) (*domain.Principal, error)
	signOutFn func(ctx context.Context, token string) error
	resetFn   func(ctx context.Context, email, remoteIP string) error
}

func (s *stubAuthService) SignIn(ctx context.Context, in ports.SignInInput) (*ports.SignInResult, error) {
	return s.signInFn(ctx, in)
}

func (s *stubAuthService) SignUp(ctx context.Context, d domain.SignUpDraft) (*domain.Principal, error) {
	return s.signUpFn(ctx, d)
}

func (s *stubAuthService) SignOut(ctx context.Context, token string) error {
	return s.signOutFn(ctx, token)
}

func (s *stubAuthService) Session(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email, remoteIP string) error {
	return s.resetFn(ctx, email, remoteIP)
}

type stubDirectoryService struct {
	listFn func(ctx context.Context, f ports.ListPrincipalsFilter) (*ports.ListPrincipalsResult, error)
}

func (s *stubDirectoryService) ListPrincipals(ctx context.Context, f ports.ListPrincipalsFilter) (*ports.ListPrincipalsResult, error) {
	return s.listFn(ctx, f)
}
