package ports

import (
	"context"
	"time"

	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/domain"
)

// Session is the result of a successful sign-in.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   *domain.Profile
}

// Service exposes the identity bounded context use cases.
type Service interface {
	SignUp(ctx context.Context, email, password, fullName string) (*domain.Profile, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, profileID string) error
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
}
