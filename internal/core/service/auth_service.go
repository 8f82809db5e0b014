package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/validation"
	"github.com/99minutos/backoffice/internal/pkg/metrics"
)

const defaultLandingPath = "/dashboard"

// AuthOptions tunes the sign-in surface.
type AuthOptions struct {
	// Gate lists the roles allowed to receive a session. Defaults to
	// domain.BackofficeRoles.
	Gate domain.RoleSet
	// LandingPath is where a fresh session is sent. Defaults to /dashboard.
	LandingPath string
}

// AuthService implements sign-in, sign-up, sign-out and admin provisioning.
type AuthService struct {
	dir      ports.UserDirectory
	hasher   ports.PasswordHasher
	sessions ports.SessionProvider
	validate *validation.Validator
	audit    ports.AuditRecorder
	log      zerolog.Logger
	gate     domain.RoleSet
	landing  string
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	dir ports.UserDirectory,
	hasher ports.PasswordHasher,
	sessions ports.SessionProvider,
	validate *validation.Validator,
	audit ports.AuditRecorder,
	log zerolog.Logger,
	opts AuthOptions,
) *AuthService {
	if audit == nil {
		audit = nopRecorder{}
	}
	if len(opts.Gate) == 0 {
		opts.Gate = domain.BackofficeRoles
	}
	if opts.LandingPath == "" {
		opts.LandingPath = defaultLandingPath
	}
	return &AuthService{
		dir:      dir,
		hasher:   hasher,
		sessions: sessions,
		validate: validate,
		audit:    audit,
		log:      log,
		gate:     opts.Gate,
		landing:  opts.LandingPath,
		now:      time.Now,
	}
}

// SignIn validates credentials, checks the password and the role gate, and
// issues a session. Unknown emails, wrong passwords and gated roles all
// yield domain.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, in ports.SignInInput) (*ports.SignInResult, error) {
	defer observe("sign_in", time.Now())

	creds, err := s.validate.Credentials(in.Email, in.Password)
	if err != nil {
		metrics.SignInAttemptsTotal.WithLabelValues("invalid_fields").Inc()
		s.record(domain.EventSignInRejected, domain.NormalizeEmail(in.Email), nil, in.RemoteIP, "invalid_fields")
		return nil, err
	}

	p, err := s.dir.FindByEmail(ctx, creds.Email)
	if errors.Is(err, domain.ErrPrincipalNotFound) {
		// Spend the same bcrypt time as a real comparison.
		_, _ = s.hasher.Compare(s.dummy(), creds.Password)
		return nil, s.rejectSignIn(in, creds.Email, nil, "unknown_email", "invalid_credentials")
	}
	if err != nil {
		return nil, s.signInFailure(in, creds.Email, fmt.Errorf("find principal: %w", err))
	}

	ok, err := s.hasher.Compare(p.PasswordHash, creds.Password)
	if err != nil {
		return nil, s.signInFailure(in, creds.Email, err)
	}
	if !ok {
		return nil, s.rejectSignIn(in, creds.Email, p, "wrong_password", "invalid_credentials")
	}
	if !s.gate.Allows(p.Role) {
		return nil, s.rejectSignIn(in, creds.Email, p, "role_denied", "role_denied")
	}

	token, sess, err := s.sessions.Issue(ctx, p)
	if err != nil {
		return nil, s.signInFailure(in, creds.Email, fmt.Errorf("issue session: %w", err))
	}

	metrics.SignInAttemptsTotal.WithLabelValues("success").Inc()
	s.record(domain.EventSignInSucceeded, creds.Email, p, in.RemoteIP, "")
	s.log.Info().
		Str("principal_id", p.ID).
		Str("role", string(p.Role)).
		Msg("signed in")

	return &ports.SignInResult{Token: token, Session: sess, RedirectTo: s.landing}, nil
}

// SignUp validates the draft, rejects taken emails, hashes the password and
// creates the principal together with its role profile. No session is
// issued.
func (s *AuthService) SignUp(ctx context.Context, draft domain.SignUpDraft) (*domain.Principal, error) {
	defer observe("sign_up", time.Now())

	d, err := s.validate.SignUp(draft)
	if err != nil {
		metrics.SignUpsTotal.WithLabelValues(roleLabel(draft.Role), "invalid_fields").Inc()
		return nil, err
	}
	role := string(d.Role)

	_, err = s.dir.FindByEmail(ctx, d.Email)
	switch {
	case err == nil:
		metrics.SignUpsTotal.WithLabelValues(role, "email_in_use").Inc()
		return nil, domain.ErrEmailInUse
	case !errors.Is(err, domain.ErrPrincipalNotFound):
		return nil, s.signUpFailure(role, fmt.Errorf("find principal: %w", err))
	}

	hash, err := s.hasher.Hash(d.Password)
	if err != nil {
		return nil, s.signUpFailure(role, err)
	}

	now := s.now().UTC()
	created, err := s.dir.CreateWithProfile(ctx, &domain.Principal{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: hash,
		Role:         d.Role,
		Phone:        d.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, d.Profile)
	if errors.Is(err, domain.ErrEmailInUse) {
		metrics.SignUpsTotal.WithLabelValues(role, "email_in_use").Inc()
		return nil, domain.ErrEmailInUse
	}
	if err != nil {
		return nil, s.signUpFailure(role, err)
	}

	metrics.SignUpsTotal.WithLabelValues(role, "success").Inc()
	s.record(domain.EventSignUp, created.Email, created, "", "")
	s.log.Info().
		Str("principal_id", created.ID).
		Str("role", role).
		Msg("principal registered")

	return created, nil
}

// SignOut revokes the session behind token. Unknown tokens are accepted.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	sess, verr := s.sessions.Verify(ctx, token)
	if err := s.sessions.Destroy(ctx, token); err != nil {
		s.log.Error().Err(err).Msg("sign-out failed")
		return fmt.Errorf("%w: %w", domain.ErrAuthFailure, err)
	}

	metrics.SignOutsTotal.Inc()
	if verr == nil {
		s.audit.Record(domain.AuthEvent{
			Kind:        domain.EventSignOut,
			Email:       sess.Email,
			PrincipalID: sess.PrincipalID,
			Role:        sess.Role,
			OccurredAt:  s.now().UTC(),
		})
	}
	return nil
}

// Session resolves token to its session.
func (s *AuthService) Session(ctx context.Context, token string) (*domain.Session, error) {
	sess, err := s.sessions.Verify(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthFailure, err)
	}
	return sess, nil
}

// RequestPasswordReset validates the email and records the request. The
// answer never reveals whether the email is registered.
func (s *AuthService) RequestPasswordReset(_ context.Context, email, remoteIP string) error {
	normalized, err := s.validate.Email(email)
	if err != nil {
		return err
	}
	s.audit.Record(domain.AuthEvent{
		Kind:       domain.EventPasswordReset,
		Email:      normalized,
		RemoteIP:   remoteIP,
		OccurredAt: s.now().UTC(),
	})
	return nil
}

// ProvisionAdmin creates an ADMIN principal. Admins cannot self-register.
func (s *AuthService) ProvisionAdmin(ctx context.Context, in validation.AdminAccount) (*domain.Principal, error) {
	in.Email = domain.NormalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	if _, err := s.dir.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailInUse
	} else if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return nil, fmt.Errorf("find principal: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return s.dir.CreateWithProfile(ctx, &domain.Principal{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil)
}

func (s *AuthService) rejectSignIn(in ports.SignInInput, email string, p *domain.Principal, reason, outcome string) error {
	metrics.SignInAttemptsTotal.WithLabelValues(outcome).Inc()
	s.record(domain.EventSignInRejected, email, p, in.RemoteIP, reason)
	s.log.Debug().Str("reason", reason).Msg("sign-in rejected")
	return domain.ErrInvalidCredentials
}

func (s *AuthService) signInFailure(in ports.SignInInput, email string, err error) error {
	metrics.SignInAttemptsTotal.WithLabelValues("error").Inc()
	s.record(domain.EventSignInRejected, email, nil, in.RemoteIP, "backend_failure")
	s.log.Error().Err(err).Msg("sign-in failed")
	return fmt.Errorf("%w: %w", domain.ErrAuthFailure, err)
}

func (s *AuthService) signUpFailure(role string, err error) error {
	metrics.SignUpsTotal.WithLabelValues(role, "error").Inc()
	s.log.Error().Err(err).Str("role", role).Msg("sign-up failed")
	return fmt.Errorf("%w: %w", domain.ErrAuthFailure, err)
}

func (s *AuthService) record(kind domain.AuthEventKind, email string, p *domain.Principal, remoteIP, reason string) {
	ev := domain.AuthEvent{
		Kind:       kind,
		Email:      email,
		RemoteIP:   remoteIP,
		Reason:     reason,
		OccurredAt: s.now().UTC(),
	}
	if p != nil {
		ev.PrincipalID = p.ID
		ev.Role = p.Role
	}
	s.audit.Record(ev)
}

// dummy returns a hash used to equalize timing for unknown emails.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("backoffice-timing-equalizer")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func observe(op string, start time.Time) {
	metrics.AuthOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func roleLabel(r domain.Role) string {
	if r, ok := domain.ParseRole(string(r)); ok {
		return string(r)
	}
	return "unknown"
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.AuthEvent) {}
