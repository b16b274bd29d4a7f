package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/femisayo-autos/autoshop-api/internal/domains/identity/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionStore persists login sessions in PostgreSQL.
type SessionStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewSessionStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewSessionStore(db *gorm.DB, sessionTTL time.Duration) *SessionStore {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &SessionStore{db: db, ttl: sessionTTL}
}

type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	ProfileID string     `gorm:"column:profile_id;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Save upserts a session token keyed by profile id.
func (s *SessionStore) Save(ctx context.Context, profileID, token string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	profileID = strings.TrimSpace(profileID)
	token = strings.TrimSpace(token)
	if profileID == "" || token == "" {
		return errors.New("profile id and token are required")
	}
	expiry := time.Now().Add(s.ttl)
	rec := sessionRecord{ProfileID: profileID, Token: token, ExpiresAt: &expiry}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"profile_id", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Delete removes all sessions for a profile.
func (s *SessionStore) Delete(ctx context.Context, profileID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "profile_id = ?", profileID).Error
}

// PurgeExpired removes all expired sessions. Used by the housekeeping job.
func (s *SessionStore) PurgeExpired(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	now := time.Now()
	return s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Delete(&sessionRecord{}).Error
}

func (s *SessionStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}
