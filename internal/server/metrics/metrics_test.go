package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue finds the sample of a counter family whose labels include want.
func counterValue(t *testing.T, m *Metrics, name string, want map[string]string) float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, s := range f.GetMetric() {
			if hasLabels(s, want) {
				return s.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func hasLabels(s *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range s.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware(nil))
	e.GET("/api/customers/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/api/boom", func(c echo.Context) error { return errors.New("boom") })
	e.GET("/api/missing", func(c echo.Context) error { return echo.NewHTTPError(http.StatusNotFound) })

	for _, p := range []string{"/api/customers/1", "/api/customers/2", "/api/boom", "/api/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	assert.Equal(t, 2.0, counterValue(t, m, "salon_http_requests_total",
		map[string]string{"route": "/api/customers/:id", "status": "204"}))
	assert.Equal(t, 1.0, counterValue(t, m, "salon_http_requests_total",
		map[string]string{"route": "/api/boom", "status": "500"}))
	assert.Equal(t, 1.0, counterValue(t, m, "salon_http_requests_total",
		map[string]string{"route": "/api/missing", "status": "404"}))
}

func TestMiddleware_UsesStatusFunc(t *testing.T) {
	errLocked := errors.New("locked")
	m := New()
	e := echo.New()
	e.Use(m.Middleware(func(err error) int {
		if errors.Is(err, errLocked) {
			return http.StatusLocked
		}
		return http.StatusInternalServerError
	}))
	e.PUT("/api/attendance", func(c echo.Context) error { return fmt.Errorf("mark: %w", errLocked) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/api/attendance", nil))

	assert.Equal(t, 1.0, counterValue(t, m, "salon_http_requests_total",
		map[string]string{"route": "/api/attendance", "status": "423"}))
	assert.Equal(t, 0.0, counterValue(t, m, "salon_http_requests_total",
		map[string]string{"route": "/api/attendance", "status": "500"}))
}

func TestCounters(t *testing.T) {
	m := New()
	m.LoginAttempt("salon", LoginFailed)
	m.LoginAttempt("salon", LoginFailed)
	m.LoginAttempt("admin", LoginOK)
	m.InvoiceCreated()
	m.JobRun("revenue", 0, true)
	m.JobRun("revenue", time.Second, false)

	assert.Equal(t, 2.0, counterValue(t, m, "salon_auth_login_attempts_total", map[string]string{"role": "salon", "result": "failed"}))
	assert.Equal(t, 1.0, counterValue(t, m, "salon_billing_invoices_created_total", nil))
	assert.Equal(t, 1.0, counterValue(t, m, "salon_jobs_runs_total", map[string]string{"job": "revenue", "success": "false"}))
}

func TestHandler_Exposes(t *testing.T) {
	m := New()
	m.InvoiceCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "salon_billing_invoices_created_total 1"))
}
