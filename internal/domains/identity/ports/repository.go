package ports

import (
	"context"
	"errors"

	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/domain"
)

var (
	ErrNotFound           = errors.New("profile not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository persists account profiles.
type Repository interface {
	Save(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
}
