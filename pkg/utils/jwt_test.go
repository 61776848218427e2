package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "ravi", "staff", "BD")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Username != "ravi" || claims.Role != "staff" || claims.BranchCode != "BD" {
		t.Errorf("claims = %+v, want ravi/staff/BD", claims)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "ravi", "staff", "BD")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m1 := NewJWTManager("secret-one", time.Hour, 24*time.Hour)
	m2 := NewJWTManager("secret-two", time.Hour, 24*time.Hour)

	token, err := m1.GenerateAccessToken(uuid.New(), "ravi", "admin", "")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := m2.ValidateAccessToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	got, err := m.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if got != userID {
		t.Errorf("user ID = %s, want %s", got, userID)
	}
}
