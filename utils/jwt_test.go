package utils

import (
	"testing"
	"time"

	"busbook/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "customer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	sub, role, err := TokenClaims(token)
	if err != nil {
		t.Fatalf("TokenClaims failed: %v", err)
	}
	if sub != "user-123" {
		t.Errorf("subject = %q, want user-123", sub)
	}
	if role != "customer" {
		t.Errorf("role = %q, want customer", role)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	token, err := GenerateToken("user-123", "customer", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, _, err := TokenClaims(token); err == nil {
		t.Fatal("expired token should not validate")
	}
}

func TestTokenRejectedUnderDifferentSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "secret-one"
	token, err := GenerateToken("user-123", "customer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	config.AppConfig.JWTSecret = "secret-two"
	if _, _, err := TokenClaims(token); err == nil {
		t.Fatal("token signed under a different secret should not validate")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	if a != b {
		t.Error("hash of identical input differs")
	}
	if a == HashToken("other-token") {
		t.Error("distinct tokens hash identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
