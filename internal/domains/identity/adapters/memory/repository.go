package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory profile persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	profiles map[string]*domain.Profile
	byEmail  map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		profiles: map[string]*domain.Profile{},
		byEmail:  map[string]string{},
	}
}

func (r *Repository) Save(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	clone := *profile
	r.mu.Lock()
	defer r.mu.Unlock()
	if existingID, ok := r.byEmail[clone.Email]; ok && existingID != clone.ID {
		return nil, ports.ErrDuplicateEmail
	}
	r.profiles[clone.ID] = &clone
	r.byEmail[clone.Email] = clone.ID
	result := clone
	return &result, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.profiles[id]
	return &clone, nil
}
