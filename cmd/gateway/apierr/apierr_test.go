package apierr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func responseWith(status int, body string) *http.Response {
	rec := httptest.NewRecorder()
	rec.WriteHeader(status)
	rec.WriteString(body)
	return rec.Result()
}

func TestFromResponseMapping(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "401", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "403", status: http.StatusForbidden, wantErr: ErrForbidden},
		{name: "404", status: http.StatusNotFound, wantErr: ErrNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := FromResponse("op", responseWith(testCase.status, ""))
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestFromResponseBadRequestIsValidationError(t *testing.T) {
	err := FromResponse("op", responseWith(http.StatusBadRequest, `{"title": ["required"]}`))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := ve.Fields["title"]; len(got) != 1 || got[0] != "required" {
		t.Fatalf("unexpected fields %v", ve.Fields)
	}
}

func TestFromResponseUnknownStatusKeepsContext(t *testing.T) {
	err := FromResponse("blog-api List", responseWith(http.StatusTeapot, "short and stout"))
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "blog-api List") || !strings.Contains(msg, "418") {
		t.Fatalf("expected op and status in message, got %q", msg)
	}
}

func TestParseValidationBodyShapes(t *testing.T) {
	ve := ParseValidationBody(strings.NewReader(`{"title": ["a", "b"], "category": "invalid", "order": 3}`))

	if got := ve.Fields["title"]; len(got) != 2 {
		t.Fatalf("expected array values kept, got %v", got)
	}
	if got := ve.Fields["category"]; len(got) != 1 || got[0] != "invalid" {
		t.Fatalf("expected string promoted to single message, got %v", got)
	}
	if got := ve.Fields["order"]; len(got) != 1 || got[0] != "3" {
		t.Fatalf("expected raw fallback for non-string value, got %v", got)
	}
}

func TestParseValidationBodyGarbage(t *testing.T) {
	ve := ParseValidationBody(strings.NewReader("not json"))
	if len(ve.Fields) != 0 {
		t.Fatalf("expected empty fields for garbage body, got %v", ve.Fields)
	}
	if ve.Error() != "validation failed" {
		t.Fatalf("unexpected message %q", ve.Error())
	}
}

func TestValidationErrorMessageSorted(t *testing.T) {
	ve := &ValidationError{Fields: map[string][]string{
		"zeta":  {"last"},
		"alpha": {"first"},
	}}
	msg := ve.Error()
	if strings.Index(msg, "alpha") > strings.Index(msg, "zeta") {
		t.Fatalf("expected deterministic field order, got %q", msg)
	}
}

func TestNetworkErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &NetworkError{Op: "GET /blogs/", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("expected Unwrap to expose the cause")
	}
	if !strings.Contains(err.Error(), "GET /blogs/") {
		t.Fatalf("expected op in message, got %q", err.Error())
	}
}
