package auth

import (
	"testing"

	"forecast-backend/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{
		ID:    7,
		Email: "analyst@example.com",
		Role:  models.RoleStaff,
	}

	token, err := GenerateToken(testSecret, user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Email != "analyst@example.com" {
		t.Errorf("unexpected email %q", claims.Email)
	}
	if claims.Role != models.RoleStaff {
		t.Errorf("unexpected role %q", claims.Role)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: 1, Email: "a@b.c", Role: models.RoleAdmin}
	token, err := GenerateToken(testSecret, user)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken("another-secret-another-secret-32", token); err == nil {
		t.Error("expected error for wrong secret, got nil")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken(testSecret, "not.a.token"); err == nil {
		t.Error("expected error for malformed token, got nil")
	}
}
