package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrEmptyFullName = errors.New("full name is required")
)

// Profile is the account record behind an authenticated identity.
type Profile struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         auth.Role
	CreatedAt    time.Time
}

// NewProfile builds a profile ensuring required invariants. The password
// is bcrypt-hashed before it is stored on the aggregate.
func NewProfile(id, email, password, fullName string, role auth.Role) (*Profile, error) {
	profile := &Profile{ID: id, Role: role}
	if err := profile.SetEmail(email); err != nil {
		return nil, err
	}
	if err := profile.SetFullName(fullName); err != nil {
		return nil, err
	}
	if err := profile.SetPassword(password); err != nil {
		return nil, err
	}
	if profile.Role == "" {
		profile.Role = auth.RoleCustomer
	}
	return profile, nil
}

// SetEmail trims and validates the email address.
func (p *Profile) SetEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	p.Email = email
	return nil
}

// SetFullName trims and validates the display name.
func (p *Profile) SetFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return ErrEmptyFullName
	}
	p.FullName = fullName
	return nil
}

// SetPassword validates strength and stores the bcrypt hash.
func (p *Profile) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 6 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the stored hash with the supplied credentials.
func (p *Profile) CheckPassword(password string) bool {
	if strings.TrimSpace(password) == "" || p.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// Identity projects the profile into the shared caller identity.
func (p *Profile) Identity() auth.Identity {
	return auth.Identity{
		ID:       p.ID,
		Email:    p.Email,
		FullName: p.FullName,
		Role:     p.Role,
	}
}
