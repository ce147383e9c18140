package helpers

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.Generate("u1", "creator", "anna@example.com")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Errorf("expiry %v too soon", exp)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != "creator" || claims.Email != "anna@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a", time.Hour).Generate("u1", "user", "a@b.se")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTManager("secret-b", time.Hour).Parse(token); err == nil {
		t.Error("token signed with another secret must not parse")
	}
}

func TestJWTExpired(t *testing.T) {
	token, _, err := NewJWTManager("secret", -time.Minute).Generate("u1", "user", "a@b.se")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewJWTManager("secret", time.Hour).Parse(token); err == nil {
		t.Error("expired token must not parse")
	}
}

func TestJWTGarbage(t *testing.T) {
	if _, err := NewJWTManager("secret", time.Hour).Parse("not-a-token"); err == nil {
		t.Error("garbage must not parse")
	}
}
