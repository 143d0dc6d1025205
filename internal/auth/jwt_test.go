package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/lemarche/marketplace-backend/internal/domain"
)

func TestJWTManager_GenerateAndValidate_Success(t *testing.T) {
	secret := "test-secret-at-least-32-chars-long-for-security"
	issuer := "marketplace-test"
	ttl := 15 * time.Minute

	manager := NewJWTManager(secret, issuer, ttl)
	userID := int64(1697088192)

	token, err := manager.GenerateAccessToken(userID, domain.UserKindBuyer)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	gotID, gotKind, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if gotID != userID {
		t.Errorf("expected user ID %d, got %d", userID, gotID)
	}
	if gotKind != domain.UserKindBuyer {
		t.Errorf("expected kind %s, got %s", domain.UserKindBuyer, gotKind)
	}
}

func TestJWTManager_Validate_Expired(t *testing.T) {
	manager := NewJWTManager("test-secret-at-least-32-chars-long-for-security", "marketplace-test", -time.Minute)

	token, err := manager.GenerateAccessToken(1, domain.UserKindSiae)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, _, err := manager.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWTManager_Validate_WrongSecret(t *testing.T) {
	issuer := "marketplace-test"
	ttl := 15 * time.Minute
	manager := NewJWTManager("test-secret-at-least-32-chars-long-for-security", issuer, ttl)
	other := NewJWTManager("another-secret-at-least-32-chars-long-for-tests", issuer, ttl)

	token, err := manager.GenerateAccessToken(1, domain.UserKindSiae)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestJWTManager_Validate_WrongIssuer(t *testing.T) {
	secret := "test-secret-at-least-32-chars-long-for-security"
	ttl := 15 * time.Minute
	manager := NewJWTManager(secret, "marketplace-test", ttl)
	other := NewJWTManager(secret, "someone-else", ttl)

	token, err := manager.GenerateAccessToken(1, domain.UserKindSiae)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, _, err := other.ValidateAccessToken(token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
	if _, _, err := manager.ValidateAccessToken(token); err != nil {
		t.Fatalf("expected token to validate with the right issuer, got: %v", err)
	}
}

func TestJWTManager_Validate_Garbage(t *testing.T) {
	manager := NewJWTManager("test-secret-at-least-32-chars-long-for-security", "marketplace-test", 15*time.Minute)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, _, err := manager.ValidateAccessToken(token); err == nil {
			t.Errorf("expected error for token %q", token)
		}
	}
}

func TestJWTManager_GenerateRefreshToken(t *testing.T) {
	manager := NewJWTManager("test-secret-at-least-32-chars-long-for-security", "marketplace-test", 15*time.Minute)

	raw, hash, err := manager.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	if raw == "" || hash == "" {
		t.Fatal("expected non-empty token and hash")
	}
	if strings.Contains(raw, hash) || raw == hash {
		t.Fatal("raw token must not contain its hash")
	}
	if got := HashToken(raw); got != hash {
		t.Errorf("HashToken mismatch: expected %s, got %s", hash, got)
	}

	raw2, _, err := manager.GenerateRefreshToken()
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	if raw == raw2 {
		t.Fatal("expected unique refresh tokens")
	}
}
