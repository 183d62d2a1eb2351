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

	"github.com/BruksfildServices01/barberpro-booking/internal/auth"
	"github.com/BruksfildServices01/barberpro-booking/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}

	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user":   c.GetUint(ContextUserID),
			"tenant": c.GetUint(ContextTenantID),
			"role":   c.GetString(ContextUserRole),
		})
	})

	tok, _ := auth.Issue("secret", auth.Claims{UserID: 3, TenantID: 8, Role: "owner"}, time.Now())

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"valid", "Bearer " + tok, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.status == http.StatusOK && !strings.Contains(w.Body.String(), `"tenant":8`) {
				t.Fatalf("claims not propagated: %s", w.Body.String())
			}
		})
	}
}

func TestOwnerOnly(t *testing.T) {
	for role, status := range map[string]int{"owner": http.StatusOK, "staff": http.StatusForbidden} {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) { c.Set(ContextUserRole, role) }, OwnerOnly(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		if w.Code != status {
			t.Fatalf("%s: expected %d, got %d", role, status, w.Code)
		}
	}
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(RequestID(), RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	r.ServeHTTP(w, req)

	if w.Header().Get(HeaderRequestID) != "abc-123" {
		t.Fatalf("request id not echoed: %q", w.Header().Get(HeaderRequestID))
	}
	if !strings.Contains(buf.String(), `"request_id":"abc-123"`) || !strings.Contains(buf.String(), `"status":418`) {
		t.Fatalf("unexpected log line: %s", buf.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if len(w.Header().Get(HeaderRequestID)) != 36 {
		t.Fatalf("expected generated uuid, got %q", w.Header().Get(HeaderRequestID))
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://painel.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name    string
		method  string
		origin  string
		status  int
		allowed string
	}{
		{"allowed origin", http.MethodGet, "https://painel.example.com", http.StatusOK, "https://painel.example.com"},
		{"other origin", http.MethodGet, "https://evil.example.com", http.StatusOK, ""},
		{"preflight", http.MethodOptions, "https://painel.example.com", http.StatusNoContent, "https://painel.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			r.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Fatalf("status %d, want %d", w.Code, tt.status)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.allowed {
				t.Fatalf("allow-origin %q, want %q", got, tt.allowed)
			}
		})
	}
}
