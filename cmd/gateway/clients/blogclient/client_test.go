package blogclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blog-canvas/cmd/gateway/apierr"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, staticToken("test-token"))
}

func TestListSendsQueryAndAuth(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 0, "results": []}`))
	})

	c := newTestClient(t, handler)
	if _, err := c.List(context.Background(), ListParams{Search: "rust", Category: 2, Page: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Django 스타일 trailing slash 가 유지되어야 한다.
	if gotPath != "/blogs/" {
		t.Fatalf("expected path /blogs/, got %q", gotPath)
	}
	for _, part := range []string{"search=rust", "category=2", "page=3"} {
		if !strings.Contains(gotQuery, part) {
			t.Fatalf("expected query to contain %q, got %q", part, gotQuery)
		}
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("expected bearer auth header, got %q", gotAuth)
	}
}

func TestGetErrorTaxonomy(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "401 unauthorized", status: http.StatusUnauthorized, wantErr: apierr.ErrUnauthorized},
		{name: "403 forbidden", status: http.StatusForbidden, wantErr: apierr.ErrForbidden},
		{name: "404 not found", status: http.StatusNotFound, wantErr: apierr.ErrNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(testCase.status)
				w.Write([]byte(testCase.body))
			}))

			_, err := c.Get(context.Background(), "whatever")
			if !errors.Is(err, testCase.wantErr) {
				t.Fatalf("expected %v, got %v", testCase.wantErr, err)
			}
		})
	}
}

func TestCreateValidationError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title": ["This field is required."], "category": "Invalid pk."}`))
	}))

	_, err := c.Create(context.Background(), PostInput{Content: "body"})

	var ve *apierr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := ve.Fields["title"]; len(got) != 1 || got[0] != "This field is required." {
		t.Fatalf("expected title message, got %v", got)
	}
	if got := ve.Fields["category"]; len(got) != 1 || got[0] != "Invalid pk." {
		t.Fatalf("expected string value accepted as single message, got %v", got)
	}
}

func TestCreateSendsMultipartFields(t *testing.T) {
	var gotTitle, gotContent string
	var gotTags []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("expected multipart form: %v", err)
		}
		gotTitle = r.FormValue("title")
		gotContent = r.FormValue("content")
		gotTags = r.MultipartForm.Value["tags"]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 1, "slug": "hello"}`))
	})

	c := newTestClient(t, handler)
	post, err := c.Create(context.Background(), PostInput{
		Title:   "Hello",
		Content: "World",
		Tags:    []string{"go", "testing"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 1 || post.Slug != "hello" {
		t.Fatalf("expected server post back, got %+v", post)
	}
	if gotTitle != "Hello" || gotContent != "World" {
		t.Fatalf("expected form fields, got title=%q content=%q", gotTitle, gotContent)
	}
	if len(gotTags) != 2 || gotTags[0] != "go" || gotTags[1] != "testing" {
		t.Fatalf("expected repeated tags fields, got %v", gotTags)
	}
}

func TestLikeParsesServerCounters(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"liked": true, "likes_count": 12}`))
	}))

	result, err := c.Like(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/blogs/7/like/" {
		t.Fatalf("expected /blogs/7/like/, got %q", gotPath)
	}
	if !result.Liked || result.LikesCount != 12 {
		t.Fatalf("expected liked=true count=12, got %+v", result)
	}
}

func TestNetworkErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 즉시 닫아서 연결 실패를 만든다.

	c := New(srv.URL, nil)
	_, err := c.List(context.Background(), ListParams{})

	var ne *apierr.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected NetworkError for unreachable backend, got %v", err)
	}
}

func TestCommentEndpoints(t *testing.T) {
	var paths []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`[{"id": 1, "blog": 4, "content": "hi"}]`))
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id": 2, "blog": 4, "content": "reply"}`))
		}
	})

	c := newTestClient(t, handler)
	ctx := context.Background()

	if _, err := c.ListComments(ctx, 4); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := c.CreateComment(ctx, 4, "hi"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := c.ReplyComment(ctx, 9, "reply"); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if err := c.DeleteComment(ctx, 9); err != nil {
		t.Fatalf("delete: %v", err)
	}

	want := []string{
		"GET /comments/blog/4/",
		"POST /comments/blog/4/",
		"POST /comments/9/reply/",
		"DELETE /comments/9/",
	}
	if len(paths) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("call %d: expected %q, got %q", i, want[i], paths[i])
		}
	}
}
