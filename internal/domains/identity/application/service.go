package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

// Service exposes identity bounded context use cases.
type Service struct {
	repo     ports.Repository
	sessions ports.SessionStore
	tokens   *auth.TokenIssuer
	now      func() time.Time
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens *auth.TokenIssuer) *Service {
	if sessions == nil {
		sessions = ports.NoopSessionStore
	}
	return &Service{repo: repo, sessions: sessions, tokens: tokens, now: time.Now}
}

// SignUp registers a new customer profile. Staff accounts are provisioned
// out of band, so every self-service registration gets the customer role.
func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (*domain.Profile, error) {
	profile, err := domain.NewProfile(uuid.NewString(), email, password, fullName, auth.RoleCustomer)
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByEmail(ctx, profile.Email); err == nil {
		return nil, mapError(ports.ErrDuplicateEmail)
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, profile)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// SignIn authenticates credentials and issues a signed access token.
func (s *Service) SignIn(ctx context.Context, email, password string) (*ports.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	profile, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if !profile.CheckPassword(password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	token, expiresAt, err := s.tokens.Issue(profile.Identity(), s.now())
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, profile.ID, token); err != nil {
		return nil, err
	}
	return &ports.Session{Token: token, ExpiresAt: expiresAt, Profile: profile}, nil
}

// SignOut drops the caller's persisted sessions. The token itself stays
// valid until expiry; session rows only exist for revocation bookkeeping.
func (s *Service) SignOut(ctx context.Context, profileID string) error {
	if strings.TrimSpace(profileID) == "" {
		return nil
	}
	return s.sessions.Delete(ctx, profileID)
}

// GetProfile loads a single profile by identifier.
func (s *Service) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

var _ ports.Service = (*Service)(nil)
