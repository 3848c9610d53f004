package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newLimitedRouter(rate int, tenantHeader string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	if tenantHeader != "" {
		// Stand-in for AuthMiddleware: the tenant claim becomes the
		// rate limit bucket.
		router.Use(func(c *gin.Context) {
			if tenant := c.GetHeader(tenantHeader); tenant != "" {
				c.Set("tenant", tenant)
			}
			c.Next()
		})
	}
	router.Use(RateLimit(rate, time.Minute))
	router.GET("/sessions/:id/merge", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func TestRateLimitPerTenant(t *testing.T) {
	router := newLimitedRouter(5, "X-Test-Tenant")

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/sessions/abc/merge", nil)
		req.Header.Set("X-Test-Tenant", "oldendorff")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, w.Code)
		}
	}

	// 6th request from the same tenant should be rate limited, even
	// from a different client address.
	req := httptest.NewRequest("GET", "/sessions/abc/merge", nil)
	req.Header.Set("X-Test-Tenant", "oldendorff")
	req.RemoteAddr = "192.168.1.99:12345"
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
}

func TestRateLimitTenantIsolation(t *testing.T) {
	router := newLimitedRouter(2, "X-Test-Tenant")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/sessions/abc/merge", nil)
		req.Header.Set("X-Test-Tenant", "oldendorff")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}

	// Another tenant still has a fresh bucket.
	req := httptest.NewRequest("GET", "/sessions/abc/merge", nil)
	req.Header.Set("X-Test-Tenant", "cargill")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Other tenant should not be rate limited, got %d", w.Code)
	}
}

func TestRateLimitFallsBackToClientIP(t *testing.T) {
	router := newLimitedRouter(2, "")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/sessions/abc/merge", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}

	// A different address without a tenant claim is its own bucket.
	req := httptest.NewRequest("GET", "/sessions/abc/merge", nil)
	req.Header.Set("X-Forwarded-For", "10.0.0.2")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Different IP should not be rate limited, got %d", w.Code)
	}
}

func TestNewRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(100, time.Minute)

	if limiter == nil {
		t.Fatal("Expected non-nil limiter")
	}
	if limiter.rate != 100 {
		t.Errorf("Expected rate 100, got %d", limiter.rate)
	}
	if limiter.window != time.Minute {
		t.Errorf("Expected window 1 minute, got %v", limiter.window)
	}
}
