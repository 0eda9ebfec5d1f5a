package httpapi

import (
	"errors"
	"net/http"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/ansuman15/salon-software-sub002/internal/server/auth"
	"github.com/ansuman15/salon-software-sub002/internal/server/metrics"
	"github.com/labstack/echo/v4"
)

type salonLoginRequest struct {
	Email         string `json:"email"`
	ActivationKey string `json:"activationKey"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var errBadCredentials = echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")

func (s *Server) loginSalon(c echo.Context) error {
	var req salonLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sess, token, err := s.svc.Sessions.LoginSalon(c.Request().Context(), req.Email, req.ActivationKey)
	return s.finishLogin(c, common.RoleSalon, sess, token, err)
}

func (s *Server) loginAdmin(c echo.Context) error {
	var req adminLoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	sess, token, err := s.svc.Sessions.LoginAdmin(c.Request().Context(), req.Username, req.Password)
	return s.finishLogin(c, common.RoleAdmin, sess, token, err)
}

func (s *Server) finishLogin(c echo.Context, role string, sess *auth.Session, token string, err error) error {
	if err != nil {
		s.metrics.LoginAttempt(role, metrics.LoginFailed)
		s.logger.Info(c.Request().Context(), "login failed", "role", role, "remote_ip", c.RealIP())
		if errors.Is(err, common.ErrorUnauthorized) {
			return errBadCredentials
		}
		return err
	}

	s.metrics.LoginAttempt(role, metrics.LoginOK)
	s.setSessionCookie(c, token, s.svc.Sessions.ValidityDuration())
	return c.JSON(http.StatusOK, toSessionDTO(sess))
}

func (s *Server) logout(c echo.Context) error {
	s.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) currentSession(c echo.Context) error {
	return c.JSON(http.StatusOK, toSessionDTO(sessionOf(c)))
}
