package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

func (s *Server) setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// readSession parses the session cookie. Any failure reads as "no session".
func (s *Server) readSession(c echo.Context) (*auth.Session, error) {
	cookie, err := c.Cookie(common.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, common.ErrorUnauthorized
	}
	return s.svc.Sessions.Parse(cookie.Value)
}

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := s.readSession(c)
		if err != nil {
			return err
		}
		c.Set(sessionKey, sess)
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess := sessionOf(c); sess == nil || !sess.IsAdmin() {
			return common.ErrorForbidden
		}
		return next(c)
	}
}

func (s *Server) requireSalon(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sess := sessionOf(c); sess == nil || sess.Role != common.RoleSalon || sess.SalonID == "" {
			return common.ErrorForbidden
		}
		return next(c)
	}
}

func sessionOf(c echo.Context) *auth.Session {
	sess, _ := c.Get(sessionKey).(*auth.Session)
	return sess
}

// salonID is only meaningful behind requireSalon.
func salonID(c echo.Context) string {
	return sessionOf(c).SalonID
}

func loginRole(c echo.Context) string {
	if strings.Contains(c.Path(), "/admin/") {
		return common.RoleAdmin
	}
	return common.RoleSalon
}
