package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/logger"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/repos"
	"github.com/education-platform/backend/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// stubUsers answers GetByID from a fixed result; other methods are unused.
type stubUsers struct {
	repos.UserRepo
	user *models.User
	err  error
}

func (s stubUsers) GetByID(_ context.Context, _ uint) (*models.User, error) {
	return s.user, s.err
}

func authEngine(t *testing.T, users repos.UserRepo) (*gin.Engine, string) {
	t.Helper()

	tokens, err := auth.NewTokenIssuer("middleware-test-secret-01", time.Hour, 2*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	token, err := tokens.Generate(7, "learner@example.com", auth.AccessToken)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	r := newEngine()
	r.GET("/me", Authenticate(users, tokens, logger.Nop()), func(c *gin.Context) {
		u, ok := c.Get(types.ContextUserKey)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, u.(AuthenticatedUser).Email)
	})
	return r, token
}

func serveMe(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateResolvesUser(t *testing.T) {
	user := &models.User{Email: "learner@example.com", IsActive: true}
	user.ID = 7
	r, token := authEngine(t, stubUsers{user: user})

	rec := serveMe(r, "Bearer "+token)
	if rec.Code != http.StatusOK || rec.Body.String() != "learner@example.com" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}

	rec = serveMe(r, "")
	if rec.Code != http.StatusOK || rec.Body.String() != "anonymous" {
		t.Fatalf("anonymous: got %d %q", rec.Code, rec.Body.String())
	}
}

func TestAuthenticateFailures(t *testing.T) {
	inactive := &models.User{Email: "learner@example.com"}
	inactive.ID = 7

	cases := []struct {
		name  string
		users stubUsers
		want  int
	}{
		{"missing user", stubUsers{err: gorm.ErrRecordNotFound}, http.StatusUnauthorized},
		{"inactive user", stubUsers{user: inactive}, http.StatusUnauthorized},
		{"store failure", stubUsers{err: errors.New("connection refused")}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, token := authEngine(t, tc.users)
			if rec := serveMe(r, "Bearer "+token); rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}

	r, _ := authEngine(t, stubUsers{})
	if rec := serveMe(r, "Bearer not-a-jwt"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: got %d", rec.Code)
	}
}
