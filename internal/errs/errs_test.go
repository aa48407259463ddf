package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPErrorCodes(t *testing.T) {
	cases := []struct {
		err    *HTTPError
		status int
		code   string
	}{
		{NewBadRequestError("bad"), http.StatusBadRequest, "BAD_REQUEST"},
		{NewUnauthorizedError("who"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{NewForbiddenError("no"), http.StatusForbidden, "FORBIDDEN"},
		{NewNotFoundError("gone"), http.StatusNotFound, "NOT_FOUND"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		if tc.err.Status != tc.status || tc.err.Code != tc.code {
			t.Fatalf("got %d/%s, want %d/%s", tc.err.Status, tc.err.Code, tc.status, tc.code)
		}
	}
}

func TestIsMatchesStatus(t *testing.T) {
	err := fmt.Errorf("load competence: %w", NewNotFoundError("Competence not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped not found to match ErrNotFound")
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatalf("not found must not match ErrForbidden")
	}
}

func TestAs(t *testing.T) {
	httpErr, ok := As(fmt.Errorf("wrap: %w", NewFieldError("email", "taken")))
	if !ok {
		t.Fatalf("expected HTTPError")
	}
	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "email" {
		t.Fatalf("unexpected field errors: %+v", httpErr.Errors)
	}

	httpErr, ok = As(errors.New("boom"))
	if ok {
		t.Fatalf("plain error must not unwrap")
	}
	if httpErr.Status != http.StatusInternalServerError || httpErr.Message == "boom" {
		t.Fatalf("unexpected fallback: %+v", httpErr)
	}
}
