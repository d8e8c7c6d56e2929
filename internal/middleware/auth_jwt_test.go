package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"server/internal/auth"
)

func TestAuthJWTInjectsIdentity(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.GenerateToken("user-123", "alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	var gotID, gotName string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = UserIDFromContext(r.Context())
		gotName = UsernameFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	AuthJWT(secret)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotID != "user-123" || gotName != "alice" {
		t.Fatalf("context identity = %q/%q, want user-123/alice", gotID, gotName)
	}
}

func TestAuthJWTRejections(t *testing.T) {
	secret := []byte("test-secret")
	expired, err := auth.GenerateToken("user-123", "alice", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	forged, err := auth.GenerateToken("user-123", "alice", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer garbage"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "forged token", header: "Bearer " + forged},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached with invalid credentials")
	})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			AuthJWT(secret)(next).ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}
