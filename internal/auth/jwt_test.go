package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken("user-123", "alice", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("ParseToken() unexpected error: %v", err)
	}
	if claims.UserID != "user-123" || claims.Username != "alice" {
		t.Fatalf("ParseToken() = %q/%q, want user-123/alice", claims.UserID, claims.Username)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "alice", []byte("secret-a"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if _, err := ParseToken(token, []byte("secret-b")); err == nil {
		t.Fatal("ParseToken() expected error for forged token")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("user-123", "alice", []byte("secret"), -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() error: %v", err)
	}
	if _, err := ParseToken(token, []byte("secret")); err == nil {
		t.Fatal("ParseToken() expected error for expired token")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", []byte("secret")); err == nil {
		t.Fatal("ParseToken() expected error for malformed token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("HashPassword() stored the password in the clear")
	}
	if !CheckPassword(hash, "hunter22") {
		t.Fatal("CheckPassword() rejected the correct password")
	}
	if CheckPassword(hash, "hunter23") {
		t.Fatal("CheckPassword() accepted a wrong password")
	}
}
