package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	repo "github.com/valoris-se/valoris-api/internal/domain/repository"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type LoginResult struct {
	Token     string
	Role      entity.Role
	ExpiresAt time.Time
}

// Login checks credentials and issues a signed bearer token. Every role
// may log in; rights are checked per route.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, entity.Validationf("missing credentials")
	}

	normalized := strings.ToLower(strings.TrimSpace(email))
	u, err := s.Users.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.Unauthorizedf("invalid credentials")
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, entity.Unauthorizedf("invalid credentials")
	}

	token, exp, err := s.JWT.Generate(u.ID, string(u.Role), u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("sign token failed")
		return nil, err
	}
	return &LoginResult{Token: token, Role: u.Role, ExpiresAt: exp}, nil
}

// CreateDevUser inserts a throwaway user. Exposed only outside
// production.
func (s *AuthService) CreateDevUser(ctx context.Context) (*entity.User, error) {
	u := &entity.User{
		Name:         "Test User",
		Email:        fmt.Sprintf("test%d@mail.com", time.Now().UnixMilli()),
		PasswordHash: "not-real-hash",
		Role:         entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
