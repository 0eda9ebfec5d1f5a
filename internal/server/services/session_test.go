package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/config"
	"github.com/ansuman15/salon-software-sub002/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func cheapHash(t *testing.T, secret string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(b)
}

func newSessionService(t *testing.T, rm *fakeRepoManager) *SessionService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &config.Config{
		SecretKey:               "k",
		SessionValidityDuration: time.Hour,
		AdminUsername:           "admin",
		AdminPasswordHash:       cheapHash(t, "hunter22"),
	}
	s := NewSessionService(db, rm, cfg)
	s.dummyOnce.Do(func() { s.dummyHash = cheapHash(t, "dummy") })
	return s
}

func TestLoginSalon(t *testing.T) {
	const key = "K7QF-93XM-PA2D-H4TB"
	active := &models.Salon{ID: "s-1", Name: "Glow", Email: "glow@example.com",
		ActivationKeyHash: cheapHash(t, key), Status: models.SalonActive}
	suspended := &models.Salon{ID: "s-2", Name: "Dim", Email: "dim@example.com",
		ActivationKeyHash: cheapHash(t, key), Status: models.SalonSuspended}

	s := newSessionService(t, &fakeRepoManager{salons: newFakeSalons(active, suspended)})

	t.Run("success normalises key", func(t *testing.T) {
		sess, token, err := s.LoginSalon(context.Background(), " glow@example.com ", " k7qf-93xm-pa2d-h4tb ")
		require.NoError(t, err)
		assert.Equal(t, "s-1", sess.SalonID)
		assert.Equal(t, "Glow", sess.SalonName)
		assert.Equal(t, common.RoleSalon, sess.Role)

		parsed, err := s.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, *sess, *parsed)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, _, err := s.LoginSalon(context.Background(), "glow@example.com", "AAAA-BBBB-CCCC-DDDD")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		_, _, err := s.LoginSalon(context.Background(), "ghost@example.com", key)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, err := s.LoginSalon(context.Background(), "", key)
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})

	t.Run("suspended", func(t *testing.T) {
		_, _, err := s.LoginSalon(context.Background(), "dim@example.com", key)
		assert.ErrorIs(t, err, common.ErrSalonInactive)
	})

	t.Run("suspended with wrong key stays unauthorized", func(t *testing.T) {
		_, _, err := s.LoginSalon(context.Background(), "dim@example.com", "nope")
		assert.ErrorIs(t, err, common.ErrorUnauthorized)
	})
}

func TestLoginSalon_RepoError(t *testing.T) {
	f := newFakeSalons()
	f.getErr = errBoom{}
	s := newSessionService(t, &fakeRepoManager{salons: f})

	_, _, err := s.LoginSalon(context.Background(), "a@b.c", "KEY")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestLoginAdmin(t *testing.T) {
	s := newSessionService(t, &fakeRepoManager{})

	sess, token, err := s.LoginAdmin(context.Background(), "admin", "hunter22")
	require.NoError(t, err)
	assert.True(t, sess.IsAdmin())
	assert.NotEmpty(t, token)

	for _, tc := range [][2]string{{"admin", "wrong"}, {"root", "hunter22"}, {"", ""}} {
		_, _, err := s.LoginAdmin(context.Background(), tc[0], tc[1])
		if !errors.Is(err, common.ErrorUnauthorized) {
			t.Fatalf("LoginAdmin(%q,%q): want ErrorUnauthorized, got %v", tc[0], tc[1], err)
		}
	}
}

func TestLoginAdmin_DisabledWithoutHash(t *testing.T) {
	s := newSessionService(t, &fakeRepoManager{})
	s.adminPasswordHash = ""

	_, _, err := s.LoginAdmin(context.Background(), "admin", "hunter22")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestParse_Garbage(t *testing.T) {
	s := newSessionService(t, &fakeRepoManager{})
	_, err := s.Parse("garbage")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.Equal(t, time.Hour, s.ValidityDuration())
}
