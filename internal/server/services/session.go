// Package services contains server-side business logic. This file implements
// SessionService, which authenticates salons (activation key) and the platform
// admin, and mints the signed session cookie value.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/ansuman15/salon-software-sub002/internal/server/config"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/ansuman15/salon-software-sub002/internal/server/repositories/repomanager"
)

// SessionService provides login and session token operations.
type SessionService struct {
	db                *sql.DB
	repomanager       repomanager.RepositoryManager
	jwtSecret         []byte
	validityDuration  time.Duration
	adminUsername     string
	adminPasswordHash string

	dummyOnce sync.Once
	dummyHash string
}

// NewSessionService constructs a SessionService using repositories and server config.
func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:                db,
		repomanager:       m,
		jwtSecret:         []byte(cfg.SecretKey),
		validityDuration:  cfg.SessionValidityDuration,
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
	}
}

// ValidityDuration is the lifetime of issued tokens, used as cookie Max-Age.
func (s *SessionService) ValidityDuration() time.Duration { return s.validityDuration }

// LoginSalon verifies the activation key of the salon registered under email.
// Unknown emails and wrong keys both yield ErrorUnauthorized; suspended
// salons with a correct key yield ErrSalonInactive.
func (s *SessionService) LoginSalon(ctx context.Context, email, activationKey string) (*auth.Session, string, error) {
	email = strings.TrimSpace(email)
	activationKey = strings.ToUpper(strings.TrimSpace(activationKey))
	if email == "" || activationKey == "" {
		return nil, "", common.ErrorUnauthorized
	}

	salon, err := s.repomanager.Salons(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same bcrypt time as a real comparison
			_ = auth.CheckSecret(s.getDummyHash(), activationKey)
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if err := auth.CheckSecret(salon.ActivationKeyHash, activationKey); err != nil {
		return nil, "", common.ErrorUnauthorized
	}
	if salon.Status != models.SalonActive {
		return nil, "", common.ErrSalonInactive
	}

	session := auth.Session{SalonID: salon.ID, SalonName: salon.Name, Role: common.RoleSalon}
	token, err := s.generateToken(session)
	if err != nil {
		return nil, "", err
	}
	return &session, token, nil
}

// LoginAdmin checks the configured admin credentials. Admin login is disabled
// while no password hash is configured.
func (s *SessionService) LoginAdmin(ctx context.Context, username, password string) (*auth.Session, string, error) {
	if s.adminPasswordHash == "" || username == "" || password == "" {
		return nil, "", common.ErrorUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passErr := auth.CheckSecret(s.adminPasswordHash, password)
	if !userOK || passErr != nil {
		return nil, "", common.ErrorUnauthorized
	}

	session := auth.Session{Role: common.RoleAdmin}
	token, err := s.generateToken(session)
	if err != nil {
		return nil, "", err
	}
	return &session, token, nil
}

// Parse validates a cookie value and returns its session.
func (s *SessionService) Parse(token string) (*auth.Session, error) {
	return auth.ParseToken(token, s.jwtSecret)
}

// --- helpers below ---

func (s *SessionService) generateToken(session auth.Session) (string, error) {
	token, err := auth.GenerateToken(session, s.jwtSecret, s.validityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

func (s *SessionService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		key, _ := common.NewActivationKey()
		s.dummyHash, _ = auth.HashSecret(key)
	})
	return s.dummyHash
}
