package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Error string `json:"error"`
}

var statusBySentinel = []struct {
	err    error
	status int
	msg    string
}{
	{common.ErrorValidation, http.StatusBadRequest, ""},
	{common.ErrInvalidSignature, http.StatusBadRequest, "invalid signature"},
	{common.ErrorUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{common.ErrInvalidToken, http.StatusUnauthorized, "unauthorized"},
	{common.ErrTokenExpired, http.StatusUnauthorized, "session expired"},
	{common.ErrorForbidden, http.StatusForbidden, "forbidden"},
	{common.ErrSalonInactive, http.StatusForbidden, "salon is not active"},
	{common.ErrorNotFound, http.StatusNotFound, "not found"},
	{common.ErrorAlreadyExists, http.StatusConflict, "already exists"},
	{common.ErrorConflict, http.StatusConflict, ""},
	{common.ErrInsufficientStock, http.StatusUnprocessableEntity, "insufficient stock"},
	{common.ErrAttendanceLocked, http.StatusLocked, "attendance is locked for this date"},
	{common.ErrRateLimited, http.StatusTooManyRequests, "too many requests"},
}

// statusCode is statusFor without the message, for the metrics middleware.
func statusCode(err error) int {
	code, _ := statusFor(err)
	return code
}

// statusFor maps an error to a status code and a client-safe message. An empty
// msg in the table means the wrapped detail after "<sentinel>: " is safe to show.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			return he.Code, m
		}
		return he.Code, http.StatusText(he.Code)
	}

	for _, s := range statusBySentinel {
		if !errors.Is(err, s.err) {
			continue
		}
		if s.msg != "" {
			return s.status, s.msg
		}
		msg := err.Error()
		if i := strings.Index(msg, s.err.Error()+": "); i >= 0 {
			msg = msg[i+len(s.err.Error())+2:]
		}
		return s.status, msg
	}
	return http.StatusInternalServerError, "internal error"
}

// errorHandler writes {"error": msg}. Unexpected errors are logged with their
// detail, which never reaches the client.
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, errorBody{Error: msg})
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "writing error response", "error", err)
	}
}
