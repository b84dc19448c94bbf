package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if !CheckPasswordHash("correct horse battery staple", hash) {
		t.Error("Expected password to match its hash")
	}
	if CheckPasswordHash("wrong password", hash) {
		t.Error("Expected mismatched password to fail")
	}
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTConfig("test-secret", 60)

	token, err := GenerateJWTToken("abc123", "alice@example.com")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ParseJWTToken(token)
	if err != nil {
		t.Fatalf("Failed to parse token: %v", err)
	}
	if claims.UserID != "abc123" || claims.Email != "alice@example.com" {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	valid, email, err := ValidateTokenAndFetchEmail(token)
	if err != nil || !valid {
		t.Fatalf("Expected token to validate: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("Expected email claim, got %q", email)
	}
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTConfig("test-secret", 60)

	if _, err := ParseJWTToken("not.a.token"); err == nil {
		t.Error("Expected garbage token to be rejected")
	}
}
