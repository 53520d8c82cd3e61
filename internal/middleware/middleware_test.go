package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	rl := NewRateLimiter(3)
	defer rl.Stop()
	h := rl.Middleware(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req.RemoteAddr = "10.0.0.1:5678"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", rr.Code)
	}

	var body map[string]map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	if body["error"]["code"] != "RATE_LIMITED" {
		t.Errorf("Expected RATE_LIMITED, got %v", body)
	}

	// Another client has its own bucket.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/contact", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("Expected other client to pass, got %d", rr.Code)
	}
}

func TestRateLimiter_CleanupForgetsIdle(t *testing.T) {
	rl := NewRateLimiter(10)
	defer rl.Stop()

	rl.Allow("a")
	rl.cleanup(time.Now().Add(time.Hour))

	rl.mu.Lock()
	n := len(rl.visitors)
	rl.mu.Unlock()
	if n != 0 {
		t.Errorf("Expected idle visitors removed, got %d", n)
	}
}

func TestRedisRateLimiter(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	rl := NewRedisRateLimiter(client, 2, time.Minute)
	rl.prefix = "ratelimit-test:" + time.Now().Format(time.RFC3339Nano) + ":"

	ctx := context.Background()
	for i, want := range []bool{true, true, false} {
		ok, err := rl.Allow(ctx, "client")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if ok != want {
			t.Errorf("request %d: expected %v, got %v", i, want, ok)
		}
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("X-Request-ID")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" || rr.Header().Get("X-Request-ID") != seen {
		t.Errorf("Expected generated id on request and response, got %q / %q", seen, rr.Header().Get("X-Request-ID"))
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if seen != "abc" || rr.Header().Get("X-Request-ID") != "abc" {
		t.Errorf("Expected incoming id to be kept, got %q", seen)
	}
}

func TestCORS(t *testing.T) {
	h := CORS("https://lfg.tech")(okHandler)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{"allowed origin", http.MethodPost, "https://lfg.tech", "https://lfg.tech", http.StatusOK},
		{"other origin", http.MethodPost, "https://evil.example", "", http.StatusOK},
		{"preflight", http.MethodOptions, "https://lfg.tech", "https://lfg.tech", http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/api/v1/contact", nil)
			req.Header.Set("Origin", tc.origin)
			if tc.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected %d, got %d", tc.wantStatus, rr.Code)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Errorf("Expected allow-origin %q, got %q", tc.wantOrigin, got)
			}
		})
	}
}

func sessionRouter(auth *SessionAuth) http.Handler {
	r := chi.NewRouter()
	r.With(auth.Middleware).Get("/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(GetSessionID(r.Context())))
	})
	return r
}

func TestSessionAuth(t *testing.T) {
	auth := NewSessionAuth("test-secret", time.Minute)
	token, err := auth.Issue("s1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	expired, _ := NewSessionAuth("test-secret", -time.Minute).Issue("s1")
	foreign, _ := NewSessionAuth("other-secret", time.Minute).Issue("s1")

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{"valid header", "/sessions/s1", "Bearer " + token, http.StatusOK, ""},
		{"valid query", "/sessions/s1?token=" + token, "", http.StatusOK, ""},
		{"missing", "/sessions/s1", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad scheme", "/sessions/s1", "Token " + token, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired", "/sessions/s1", "Bearer " + expired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"wrong secret", "/sessions/s1", "Bearer " + foreign, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"other session", "/sessions/s2", "Bearer " + token, http.StatusForbidden, "FORBIDDEN"},
	}

	h := sessionRouter(auth)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tc.wantStatus {
				t.Fatalf("Expected %d, got %d (%s)", tc.wantStatus, rr.Code, rr.Body.String())
			}
			if tc.wantCode == "" {
				if rr.Body.String() != "s1" {
					t.Errorf("Expected session id in context, got %q", rr.Body.String())
				}
				return
			}
			var body map[string]map[string]string
			json.NewDecoder(rr.Body).Decode(&body)
			if body["error"]["code"] != tc.wantCode {
				t.Errorf("Expected code %q, got %v", tc.wantCode, body)
			}
		})
	}
}
