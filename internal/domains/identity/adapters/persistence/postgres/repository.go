package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/ports"
	"github.com/femisayo-autos/autoshop-api/internal/shared/auth"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists profiles in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&profileRecord{})
	}
	return repo
}

// profileRecord maps the profile aggregate to a relational table.
type profileRecord struct {
	ID           string    `gorm:"primaryKey;column:id;type:varchar(64)"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	FullName     string    `gorm:"column:full_name"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;type:varchar(16);index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (profileRecord) TableName() string { return "profiles" }

// Save inserts or updates a profile. Duplicate emails surface as
// ports.ErrDuplicateEmail.
func (r *Repository) Save(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile is nil")
	}
	record := toRecord(profile)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"email":         record.Email,
				"full_name":     record.FullName,
				"password_hash": record.PasswordHash,
				"role":          record.Role,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a profile by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record profileRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByEmail fetches a profile by its unique email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record profileRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres profile repository not configured")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

func toRecord(profile *domain.Profile) profileRecord {
	return profileRecord{
		ID:           profile.ID,
		Email:        profile.Email,
		FullName:     profile.FullName,
		PasswordHash: profile.PasswordHash,
		Role:         string(profile.Role),
		CreatedAt:    profile.CreatedAt,
	}
}

func (r profileRecord) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:           r.ID,
		Email:        r.Email,
		FullName:     r.FullName,
		PasswordHash: r.PasswordHash,
		Role:         auth.Role(r.Role),
		CreatedAt:    r.CreatedAt,
	}
}
