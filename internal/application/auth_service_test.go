package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	hash, err := helpers.HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if err := users.Create(context.Background(), &entity.User{
		Name:         "Anna",
		Email:        "anna@example.com",
		PasswordHash: hash,
		Role:         entity.RoleCreator,
	}); err != nil {
		t.Fatal(err)
	}

	jwt := helpers.NewJWTManager("test-secret", 168*time.Hour)
	return NewAuthService(users, jwt, quietLogger()), users
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), "  ANNA@example.com ", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Error("empty token")
	}
	if res.Role != entity.RoleCreator {
		t.Errorf("role = %q", res.Role)
	}
	if time.Until(res.ExpiresAt) < 167*time.Hour {
		t.Errorf("expiry %v too soon", res.ExpiresAt)
	}

	claims, err := helpers.NewJWTManager("test-secret", time.Hour).Parse(res.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Email != "anna@example.com" || claims.Role != string(entity.RoleCreator) {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRejections(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "")
	if !errors.Is(err, entity.ErrValidation) {
		t.Errorf("missing credentials: %v", err)
	}

	_, err = svc.Login(ctx, "anna@example.com", "wrong")
	if !errors.Is(err, entity.ErrUnauthorized) {
		t.Errorf("wrong password: %v", err)
	}

	// An unknown email must be indistinguishable from a wrong password.
	_, err = svc.Login(ctx, "nobody@example.com", "correct horse")
	if !errors.Is(err, entity.ErrUnauthorized) {
		t.Errorf("unknown email: %v", err)
	}
}

func TestCreateDevUser(t *testing.T) {
	svc, users := newAuthFixture(t)

	u, err := svc.CreateDevUser(context.Background())
	if err != nil {
		t.Fatalf("CreateDevUser: %v", err)
	}
	if u.Role != entity.RoleUser {
		t.Errorf("role = %q", u.Role)
	}
	if _, err := users.GetByEmail(context.Background(), u.Email); err != nil {
		t.Errorf("dev user not persisted: %v", err)
	}
}
