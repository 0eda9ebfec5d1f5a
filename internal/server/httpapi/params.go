package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ansuman15/salon-software-sub002/internal/common"
	"github.com/labstack/echo/v4"
)

// localMinuteLayout is what <input type="datetime-local"> submits.
const localMinuteLayout = "2006-01-02T15:04"

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	return nil
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}

func queryBool(c echo.Context, name string) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, echo.NewHTTPError(http.StatusBadRequest, name+" must be true or false")
	}
	return b, nil
}

// parseInstant accepts RFC 3339 or a zone-less local minute in loc.
func parseInstant(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(localMinuteLayout, raw, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// timeRange reads from/to query params as either calendar dates, where to is
// inclusive, or instants, where to is exclusive. Both default to today.
func (s *Server) timeRange(c echo.Context) (time.Time, time.Time, error) {
	from, err := s.rangeBound(c, "from", false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := s.rangeBound(c, "to", true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func (s *Server) rangeBound(c echo.Context, name string, end bool) (time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		y, m, d := time.Now().In(s.loc).Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
		if end {
			day = day.AddDate(0, 0, 1)
		}
		return day, nil
	}
	if day, err := time.ParseInLocation(common.DateLayout, raw, s.loc); err == nil {
		if end {
			day = day.AddDate(0, 0, 1)
		}
		return day, nil
	}
	if t, ok := parseInstant(raw, s.loc); ok {
		return t, nil
	}
	return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
}
