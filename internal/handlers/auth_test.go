package handlers_test

import (
	"net/http"
	"testing"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/testutil"
	"github.com/education-platform/backend/internal/types"
)

func TestRegister(t *testing.T) {
	app := newApp(t)
	profession := testutil.SeedProfession(t, app.db, "Backend")

	rec := app.do(http.MethodPost, "/api/register/", "", map[string]interface{}{
		"email":      "Dev@Example.com",
		"password":   "supersecret",
		"username":   "dev",
		"profession": profession.ID,
	})
	expectStatus(t, rec, http.StatusCreated)

	got := decode[map[string]interface{}](t, rec)
	if _, ok := got["password"]; ok {
		t.Fatalf("password leaked in response: %v", got)
	}
	if got["email"] != "dev@example.com" {
		t.Fatalf("expected normalized email, got %v", got["email"])
	}

	var user models.User
	if err := app.db.Where("email = ?", "dev@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.PasswordHash == "supersecret" || !auth.CheckPassword(user.PasswordHash, "supersecret") {
		t.Fatalf("password not hashed correctly")
	}
	if user.IsStaff || user.IsSuperuser || !user.IsActive {
		t.Fatalf("unexpected flags on new user: %+v", user)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newApp(t)
	testutil.SeedUser(t, app.db, "taken@example.com")

	rec := app.do(http.MethodPost, "/api/register/", "", map[string]interface{}{
		"email":    "TAKEN@example.com",
		"password": "supersecret",
		"username": "another",
	})
	expectStatus(t, rec, http.StatusBadRequest)

	if msg := fieldError(t, rec, "email"); msg == "" {
		t.Fatalf("expected email error")
	}
	if n := testutil.Count(t, app.db, &models.User{}, ""); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newApp(t)
	testutil.SeedUser(t, app.db, "taken@example.com")

	cases := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"missing email", map[string]interface{}{"password": "supersecret", "username": "x"}, "email"},
		{"bad email", map[string]interface{}{"email": "nope", "password": "supersecret", "username": "x"}, "email"},
		{"short password", map[string]interface{}{"email": "a@example.com", "password": "short", "username": "x"}, "password"},
		{"missing username", map[string]interface{}{"email": "a@example.com", "password": "supersecret"}, "username"},
		{"blank username", map[string]interface{}{"email": "a@example.com", "password": "supersecret", "username": "   "}, "username"},
		{"taken username", map[string]interface{}{"email": "a@example.com", "password": "supersecret", "username": "taken@example.com"}, "username"},
		{"unknown profession", map[string]interface{}{"email": "a@example.com", "password": "supersecret", "username": "x", "profession": 999}, "profession"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/api/register/", "", tc.body)
			expectStatus(t, rec, http.StatusBadRequest)
			fieldError(t, rec, tc.field)
		})
	}

	if n := testutil.Count(t, app.db, &models.User{}, ""); n != 1 {
		t.Fatalf("expected no new users, got %d", n)
	}
}

func TestObtainAndRefreshToken(t *testing.T) {
	app := newApp(t)
	user := testutil.SeedUser(t, app.db, "learner@example.com")

	rec := app.do(http.MethodPost, "/api/token/", "", map[string]string{
		"email":    "learner@example.com",
		"password": testutil.Password,
	})
	expectStatus(t, rec, http.StatusOK)
	pair := decode[auth.TokenPair](t, rec)
	if pair.Access == "" || pair.Refresh == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}

	rec = app.do(http.MethodGet, "/api/user/me/", pair.Access, nil)
	expectStatus(t, rec, http.StatusOK)
	if me := decode[types.SelfResponse](t, rec); me.ID != user.ID {
		t.Fatalf("me: got id %d, want %d", me.ID, user.ID)
	}

	rec = app.do(http.MethodPost, "/api/token/refresh/", "", map[string]string{"refresh": pair.Refresh})
	expectStatus(t, rec, http.StatusOK)
	if access := decode[types.AccessResponse](t, rec); access.Access == "" {
		t.Fatalf("expected new access token")
	}

	// An access token cannot be used as a refresh token and vice versa.
	rec = app.do(http.MethodPost, "/api/token/refresh/", "", map[string]string{"refresh": pair.Access})
	expectStatus(t, rec, http.StatusUnauthorized)

	rec = app.do(http.MethodGet, "/api/user/me/", pair.Refresh, nil)
	expectStatus(t, rec, http.StatusUnauthorized)
}

func TestObtainTokenRejects(t *testing.T) {
	app := newApp(t)
	testutil.SeedUser(t, app.db, "learner@example.com")
	inactive := testutil.SeedUser(t, app.db, "gone@example.com")
	testutil.Deactivate(t, app.db, inactive)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "learner@example.com", "wrong-password"},
		{"unknown email", "nobody@example.com", testutil.Password},
		{"inactive user", "gone@example.com", testutil.Password},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.do(http.MethodPost, "/api/token/", "", map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			expectStatus(t, rec, http.StatusUnauthorized)
		})
	}
}

func TestAuthenticationFailures(t *testing.T) {
	app := newApp(t)
	user := testutil.SeedUser(t, app.db, "learner@example.com")
	token := app.token(user)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token " + token},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := newRequest(http.MethodGet, "/api/user/me/")
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := app.send(req, "")
			expectStatus(t, rec, http.StatusUnauthorized)
		})
	}

	t.Run("deactivated after issue", func(t *testing.T) {
		testutil.Deactivate(t, app.db, user)
		rec := app.do(http.MethodGet, "/api/user/me/", token, nil)
		expectStatus(t, rec, http.StatusUnauthorized)
	})

	t.Run("deleted user", func(t *testing.T) {
		ghost := testutil.SeedUser(t, app.db, "ghost@example.com")
		ghostToken := app.token(ghost)
		if err := app.db.Delete(ghost).Error; err != nil {
			t.Fatalf("delete user: %v", err)
		}
		rec := app.do(http.MethodGet, "/api/user/me/", ghostToken, nil)
		expectStatus(t, rec, http.StatusUnauthorized)
	})
}

func TestRegisterTrimsUsername(t *testing.T) {
	app := newApp(t)
	testutil.SeedUser(t, app.db, "bob@example.com", func(u *models.User) { u.Username = "bob" })

	rec := app.do(http.MethodPost, "/api/register/", "", map[string]string{
		"email":    "other@example.com",
		"password": "supersecret",
		"username": "  bob ",
	})
	expectStatus(t, rec, http.StatusBadRequest)
	fieldError(t, rec, "username")

	rec = app.do(http.MethodPost, "/api/register/", "", map[string]string{
		"email":    "other@example.com",
		"password": "supersecret",
		"username": " alice ",
	})
	expectStatus(t, rec, http.StatusCreated)
	if got := decode[types.RegisterResponse](t, rec); got.Username != "alice" {
		t.Fatalf("expected trimmed username, got %q", got.Username)
	}
}
