package auth

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	InitializeJWT("test-secret")

	token, err := GenerateToken("u1", "ada@example.com", "customer")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	if claims.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", claims.UserID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("Email = %q, want ada@example.com", claims.Email)
	}
	if claims.Role != "customer" {
		t.Errorf("Role = %q, want customer", claims.Role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	InitializeJWT("secret-one")
	token, err := GenerateToken("u1", "a@b.c", "customer")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	InitializeJWT("secret-two")
	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with a different secret should not validate")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	InitializeJWT("test-secret")
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token should not validate")
	}
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	jwtSecret = nil
	defer InitializeJWT("test-secret")

	if _, err := GenerateToken("u1", "a@b.c", "customer"); err == nil {
		t.Error("GenerateToken without a secret should fail")
	}
	if _, err := ValidateToken("anything"); err == nil {
		t.Error("ValidateToken without a secret should fail")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "secret1" {
		t.Error("hash must not equal the plaintext")
	}

	if err := VerifyPassword("secret1", hash); err != nil {
		t.Errorf("VerifyPassword with correct password failed: %v", err)
	}
	if err := VerifyPassword("wrong", hash); err == nil {
		t.Error("VerifyPassword with wrong password should fail")
	}
}
