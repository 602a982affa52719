package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httptest requests arrive from 192.0.2.1.
var testProxies = []string{"192.0.2.1"}

func newLimited(t *testing.T, max int, allow AllowFunc) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.Use(RealIP(testProxies))
	r.POST("/auth/login", RateLimit(rdb, max, time.Minute, KeyByIPAndPath(), allow, nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func hit(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit(t *testing.T) {
	r, mr := newLimited(t, 2, nil)

	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.7").Code)
	w := hit(r, "203.0.113.7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hit(r, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), `"success":false`)

	// other clients have their own budget
	assert.Equal(t, http.StatusOK, hit(r, "198.51.100.1").Code)

	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.7").Code)
}

func TestRateLimit_AllowPrivateIP(t *testing.T) {
	r, _ := newLimited(t, 1, AllowPrivateIP())
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r, "10.0.0.5").Code)
	}
	assert.Equal(t, http.StatusOK, hit(r, "203.0.113.9").Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(r, "203.0.113.9").Code)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	r, mr := newLimited(t, 1, nil)
	mr.Close()
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, hit(r, "203.0.113.7").Code)
	}
}

func TestRateLimit_SpoofedForwardedFor(t *testing.T) {
	r, _ := newLimited(t, 1, nil)

	passed := 0
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "198.51.100.50:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("CF-Connecting-IP", fmt.Sprintf("198.18.0.%d", i))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == http.StatusOK {
			passed++
		}
	}
	assert.Equal(t, 1, passed)
}

func realIPOf(r *gin.Engine, remote string, headers map[string]string) string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Body.String()
}

func TestRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RealIP([]string{"192.0.2.1", "10.0.0.0/8"}))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"trusted chain", "", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "203.0.113.7"},
		{"appended hop wins over forged one", "", map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7"}, "203.0.113.7"},
		{"cloudflare", "", map[string]string{"CF-Connecting-IP": "198.51.100.2", "X-Forwarded-For": "203.0.113.7"}, "198.51.100.2"},
		{"no headers", "", nil, "192.0.2.1"},
		{"untrusted peer", "198.51.100.50:40000", map[string]string{"X-Forwarded-For": "203.0.113.7", "CF-Connecting-IP": "198.51.100.2"}, "198.51.100.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, realIPOf(r, tt.remote, tt.headers))
		})
	}
}

func TestRealIP_NoTrustedProxies(t *testing.T) {
	r := gin.New()
	r.Use(RealIP(nil))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	assert.Equal(t, "192.0.2.1", realIPOf(r, "", map[string]string{"X-Forwarded-For": "203.0.113.7"}))
}
