package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"guideomra/pkg/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.SetDefault(logger.Discard())
}

func TestGetRateLimitType(t *testing.T) {
	cases := []struct {
		method string
		path   string
		want   RateLimitType
	}{
		{http.MethodGet, "/health", RateLimitTypeHealth},
		{http.MethodPost, "/api/v1/auth/refresh", RateLimitTypeAuth},
		{http.MethodPost, "/api/v1/reservations", RateLimitTypeReservationCritical},
		{http.MethodPost, "/api/v1/reservations/quote", RateLimitTypeReservationCritical},
		{http.MethodGet, "/api/v1/reservations", RateLimitTypeReservation},
		{http.MethodPost, "/api/v1/guide/services", RateLimitTypeGuide},
		{http.MethodGet, "/api/v1/services/:id", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/guides/:id/services", RateLimitTypePublic},
		{http.MethodGet, "/api/v1/calendar/:system", RateLimitTypePublic},
		{http.MethodGet, "/swagger/index.html", RateLimitTypeDefault},
	}
	for _, tc := range cases {
		if got := getRateLimitType(tc.method, tc.path); got != tc.want {
			t.Fatalf("getRateLimitType(%s %s) = %s, want %s", tc.method, tc.path, got, tc.want)
		}
	}
}

func TestGetClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "10.0.0.9:4242"

	if got := getClientIP(c); got != "10.0.0.9" {
		t.Fatalf("remote addr ip = %s", got)
	}

	c.Request.Header.Set("X-Real-IP", "192.168.1.4")
	if got := getClientIP(c); got != "192.168.1.4" {
		t.Fatalf("x-real-ip = %s", got)
	}

	c.Request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := getClientIP(c); got != "203.0.113.7" {
		t.Fatalf("x-forwarded-for = %s", got)
	}

	c.Request.Header.Set("X-Forwarded-For", "not-an-ip")
	if got := getClientIP(c); got != "192.168.1.4" {
		t.Fatalf("invalid forwarded ip not skipped: %s", got)
	}
}

func TestIsAllowedSkipsRedis(t *testing.T) {
	cfg := &Config{
		Enabled:        true,
		WindowDuration: time.Minute,
		AuthRequests:   5,
		WhitelistedIPs: []string{"127.0.0.1"},
	}
	// nil client: any Redis call would panic
	limiter := NewRateLimiter(nil, cfg)

	res, err := limiter.IsAllowed(context.Background(), "127.0.0.1", RateLimitTypeAuth)
	if err != nil || !res.Allowed || res.Limit != 5 || res.Remaining != 5 {
		t.Fatalf("whitelisted: res=%+v err=%v", res, err)
	}

	cfg.Enabled = false
	res, err = limiter.IsAllowed(context.Background(), "203.0.113.7", RateLimitTypeAuth)
	if err != nil || !res.Allowed {
		t.Fatalf("disabled: res=%+v err=%v", res, err)
	}
}

func TestMiddlewareSetsHeadersWhenDisabled(t *testing.T) {
	limiter := NewRateLimiter(nil, &Config{WindowDuration: time.Minute, PublicRequests: 100})

	router := gin.New()
	router.Use(Middleware(limiter))
	router.GET("/api/v1/services", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Limit") != "100" {
		t.Fatalf("limit header = %q", w.Header().Get("X-RateLimit-Limit"))
	}
}
