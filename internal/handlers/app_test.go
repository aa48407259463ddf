package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/education-platform/backend/internal/auth"
	"github.com/education-platform/backend/internal/errs"
	"github.com/education-platform/backend/internal/handlers"
	"github.com/education-platform/backend/internal/middleware"
	"github.com/education-platform/backend/internal/models"
	"github.com/education-platform/backend/internal/repos"
	"github.com/education-platform/backend/internal/router"
	"github.com/education-platform/backend/internal/storage"
	"github.com/education-platform/backend/internal/testutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testApp struct {
	t        *testing.T
	db       *gorm.DB
	engine   *gin.Engine
	tokens   *auth.TokenIssuer
	mediaDir string
}

func newApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := testutil.DB(t)
	log := testutil.Logger(t)

	tokens, err := auth.NewTokenIssuer("handler-test-secret-0123", time.Hour, 24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	dir := t.TempDir()
	blobs, err := storage.NewLocal(dir, "/media", log)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	r := repos.New(conn, log)
	h := handlers.New(conn, r, tokens, blobs, log)

	engine := router.NewRouter(h, router.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		Authenticate:   middleware.Authenticate(r.Users, tokens, log),
		MediaURL:       "/media",
		MediaDir:       blobs.Dir(),
		Log:            log,
	})

	return &testApp{t: t, db: conn, engine: engine, tokens: tokens, mediaDir: blobs.Dir()}
}

func (a *testApp) token(u *models.User) string {
	a.t.Helper()
	token, err := a.tokens.Generate(u.ID, u.Email, auth.AccessToken)
	if err != nil {
		a.t.Fatalf("Generate: %v", err)
	}
	return token
}

// do sends body as JSON when it is not nil.
func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.send(req, token)
}

// upload sends fields and an optional file as multipart/form-data.
func (a *testApp) upload(method, path, token string, fields map[string]string, filename, content string) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			a.t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			a.t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			a.t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		a.t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return a.send(req, token)
}

func (a *testApp) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %T: %v (%s)", out, err, rec.Body.String())
	}
	return out
}

func fieldError(t *testing.T, rec *httptest.ResponseRecorder, field string) string {
	t.Helper()
	body := decode[errs.HTTPError](t, rec)
	for _, fe := range body.Errors {
		if fe.Field == field {
			return fe.Error
		}
	}
	t.Fatalf("no error for field %q in %s", field, rec.Body.String())
	return ""
}

func path(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
