package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func requestIDRouter(seen *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		*seen = RequestIDFromContext(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-abc.123")
	resp := httptest.NewRecorder()
	requestIDRouter(&seen).ServeHTTP(resp, req)

	if seen != "client-abc.123" || resp.Header().Get("X-Request-Id") != "client-abc.123" {
		t.Fatalf("expected client id, got ctx=%q header=%q", seen, resp.Header().Get("X-Request-Id"))
	}
}

func TestRequestIDReplacesInvalidValue(t *testing.T) {
	for _, bad := range []string{"", "has space", strings.Repeat("x", 200)} {
		var seen string
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if bad != "" {
			req.Header.Set("X-Request-Id", bad)
		}
		resp := httptest.NewRecorder()
		requestIDRouter(&seen).ServeHTTP(resp, req)

		if _, err := uuid.Parse(seen); err != nil {
			t.Fatalf("header %q: expected generated uuid, got %q", bad, seen)
		}
		if resp.Header().Get("X-Request-Id") != seen {
			t.Fatalf("header %q: response header %q != context %q", bad, resp.Header().Get("X-Request-Id"), seen)
		}
	}
}
