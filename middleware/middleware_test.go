package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SriHarshaKodavati/openBill/utils"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.POST("/groups/:code/expenses", AuthRequired(testSecret), func(c *gin.Context) {
		code, member := utils.GetCurrentMember(c)
		c.JSON(http.StatusOK, gin.H{"code": code, "member": member})
	})
	return r
}

func TestAuthRequired(t *testing.T) {
	r := newAuthRouter()
	token, err := utils.GenerateToken(testSecret, "AB12CD34", "Alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/groups/AB12CD34/expenses", "", http.StatusUnauthorized},
		{"not bearer", "/groups/AB12CD34/expenses", "Token " + token, http.StatusUnauthorized},
		{"garbage", "/groups/AB12CD34/expenses", "Bearer nope", http.StatusUnauthorized},
		{"other group", "/groups/ZZ99ZZ99/expenses", "Bearer " + token, http.StatusForbidden},
		{"lower-case code", "/groups/ab12cd34/expenses", "Bearer " + token, http.StatusOK},
		{"ok", "/groups/AB12CD34/expenses", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"member":"Alice"`)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	line := buf.String()
	assert.Contains(t, line, "level=WARN")
	assert.Contains(t, line, "path=/missing")
	assert.Contains(t, line, "status=404")
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/groups/:code", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, code := range []string{"AAAA1111", "BBBB2222"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/groups/"+code, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/groups/:code", "200")))

	expected := `
# HELP openbill_http_requests_total HTTP requests by method, route and status.
# TYPE openbill_http_requests_total counter
openbill_http_requests_total{method="GET",route="/groups/:code",status="200"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "openbill_http_requests_total"))
}
