package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/valoris-se/valoris-api/internal/domain/entity"
	"github.com/valoris-se/valoris-api/pkg/helpers"
)

func authRouter(jwt *helpers.JWTManager, roles ...entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/", BearerAuth(jwt))
	if len(roles) > 0 {
		grp.Use(RequireRole(roles...))
	}
	grp.GET("/probe", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString(CtxUserIDKey),
			"role":   c.GetString(CtxUserRoleKey),
		})
	})
	return r
}

func doProbe(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerAuth(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := authRouter(jwt)

	token, _, err := jwt.Generate("u1", "user", "a@b.se")
	if err != nil {
		t.Fatal(err)
	}

	if w := doProbe(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d", w.Code)
	}
	if w := doProbe(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no header: status = %d", w.Code)
	}
	if w := doProbe(r, token); w.Code != http.StatusUnauthorized {
		t.Errorf("missing Bearer prefix: status = %d", w.Code)
	}
	if w := doProbe(r, "Bearer garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d", w.Code)
	}

	other, _, err := helpers.NewJWTManager("other-secret", time.Hour).Generate("u1", "user", "a@b.se")
	if err != nil {
		t.Fatal(err)
	}
	if w := doProbe(r, "Bearer "+other); w.Code != http.StatusUnauthorized {
		t.Errorf("foreign secret: status = %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	jwt := helpers.NewJWTManager("secret", time.Hour)
	r := authRouter(jwt, entity.RoleAdmin, entity.RoleCreator)

	adminToken, _, _ := jwt.Generate("u1", "admin", "a@b.se")
	creatorToken, _, _ := jwt.Generate("u2", "creator", "c@b.se")
	userToken, _, _ := jwt.Generate("u3", "user", "u@b.se")

	if w := doProbe(r, "Bearer "+adminToken); w.Code != http.StatusOK {
		t.Errorf("admin: status = %d", w.Code)
	}
	if w := doProbe(r, "Bearer "+creatorToken); w.Code != http.StatusOK {
		t.Errorf("creator: status = %d", w.Code)
	}
	if w := doProbe(r, "Bearer "+userToken); w.Code != http.StatusForbidden {
		t.Errorf("plain user: status = %d, want 403", w.Code)
	}
}
