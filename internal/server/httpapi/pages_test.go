package httpapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages_Redirects(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name     string
		target   string
		token    string
		location string
	}{
		{"root without session", "/", "", "/login"},
		{"root as salon", "/", salonToken, "/dashboard"},
		{"root as admin", "/", adminToken, "/admin"},
		{"page without session", "/billing", "", "/login"},
		{"admin page as salon", "/admin", salonToken, "/dashboard"},
		{"salon page as admin", "/inventory", adminToken, "/admin"},
		{"login with live session", "/login", salonToken, "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := h.do(http.MethodGet, tt.target, "", tt.token)
			assert.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

func TestPages_Render(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/login", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="salon-login"`)

	rec = h.do(http.MethodGet, "/appointments", "", salonToken)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-page="/appointments"`)
	assert.Contains(t, body, "Glow")
	assert.Contains(t, body, `<a href="/appointments" class="active">`)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))

	rec = h.do(http.MethodGet, "/admin", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Platform admin")
}

func TestStaticAssets(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodGet, "/static/app.js", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/auth/login")
}
