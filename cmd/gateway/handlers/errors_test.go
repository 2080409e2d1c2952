package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"blog-canvas/cmd/gateway/apierr"
	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/view"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unauthorized", err: apierr.ErrUnauthorized, wantStatus: http.StatusUnauthorized},
		{name: "forbidden", err: apierr.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "not found", err: apierr.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "validation", err: &apierr.ValidationError{Fields: map[string][]string{"title": {"required"}}}, wantStatus: http.StatusBadRequest},
		{name: "network", err: &apierr.NetworkError{Op: "GET /blogs/", Err: errors.New("refused")}, wantStatus: http.StatusBadGateway},
		{name: "stale selection", err: view.ErrStale, wantStatus: http.StatusConflict},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			ginCtx, _ := gin.CreateTestContext(recorder)
			ginCtx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(ginCtx, testCase.err)

			if recorder.Code != testCase.wantStatus {
				t.Fatalf("expected status %d, got %d", testCase.wantStatus, recorder.Code)
			}

			var body dto.ErrorResponseDTO
			if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Error == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestWriteErrorValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	ginCtx, _ := gin.CreateTestContext(recorder)
	ginCtx.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	writeError(ginCtx, &apierr.ValidationError{Fields: map[string][]string{"title": {"This field is required."}}})

	var body dto.ErrorResponseDTO
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if got := body.Fields["title"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("expected per-field messages, got %v", body.Fields)
	}
}
