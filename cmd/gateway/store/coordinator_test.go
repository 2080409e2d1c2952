package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blog-canvas/cmd/gateway/apierr"
	"blog-canvas/cmd/gateway/clients/blogclient"
	"blog-canvas/models"
)

type fakeIdentity bool

func (f fakeIdentity) Authenticated() bool { return bool(f) }

// longDebounce 는 테스트 중에 백그라운드 재동기화가 끼어들지 않게 한다.
const longDebounce = time.Hour

func newTestCoordinator(t *testing.T, handler http.Handler, authed bool) (*Coordinator, *Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	st := New()
	client := blogclient.New(srv.URL, nil)
	coord := NewCoordinator(st, client, fakeIdentity(authed), longDebounce)
	t.Cleanup(coord.Close)
	return coord, st, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestLikeAppliesServerCounters(t *testing.T) {
	// 토글: 첫 호출은 3→4, 두 번째 호출은 4→3 으로 서버가 돌려준다.
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /blogs/7/like/", func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(w, http.StatusOK, map[string]any{"liked": true, "likes_count": 4})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"liked": false, "likes_count": 3})
	})

	coord, st, _ := newTestCoordinator(t, mux, true)
	st.ReplaceAll([]models.Post{{ID: 7, Slug: "seven", LikesCount: 3}}, 1)

	post, err := coord.Like(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !post.Liked || post.LikesCount != 4 {
		t.Fatalf("expected liked=true count=4, got liked=%v count=%d", post.Liked, post.LikesCount)
	}

	post, err = coord.Like(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Liked || post.LikesCount != 3 {
		t.Fatalf("expected toggle back to liked=false count=3, got liked=%v count=%d", post.Liked, post.LikesCount)
	}
}

func TestLikeUnauthenticatedDoesNotTouchStore(t *testing.T) {
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	})

	coord, st, _ := newTestCoordinator(t, handler, false)
	st.ReplaceAll([]models.Post{{ID: 7, LikesCount: 3}}, 1)

	_, err := coord.Like(context.Background(), 7)
	if !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("unauthenticated like must not reach the backend, got %d requests", requests)
	}
	got, _ := st.Get(7)
	if got.Liked || got.LikesCount != 3 {
		t.Fatalf("store must stay untouched, got liked=%v count=%d", got.Liked, got.LikesCount)
	}
}

func TestLikeFailureLeavesStoreUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /blogs/7/like/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	coord, st, _ := newTestCoordinator(t, mux, true)
	st.ReplaceAll([]models.Post{{ID: 7, LikesCount: 3}}, 1)

	if _, err := coord.Like(context.Background(), 7); err == nil {
		t.Fatalf("expected error from failed like")
	}
	got, _ := st.Get(7)
	if got.Liked || got.LikesCount != 3 {
		t.Fatalf("failed like must not mutate the store, got liked=%v count=%d", got.Liked, got.LikesCount)
	}
}

func TestBookmarkAppliesServerFlag(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /blogs/5/bookmark/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"bookmarked": true})
	})

	coord, st, _ := newTestCoordinator(t, mux, true)
	st.ReplaceAll([]models.Post{{ID: 5, Slug: "five"}}, 1)

	post, err := coord.Bookmark(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !post.Bookmarked {
		t.Fatalf("expected bookmarked=true")
	}
}

func TestDeleteConfirmThenRemove(t *testing.T) {
	fail := true
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /blogs/seven/", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	coord, st, _ := newTestCoordinator(t, mux, true)
	st.ReplaceAll([]models.Post{{ID: 7, Slug: "seven"}}, 1)

	// 실패한 삭제는 포스트를 남긴다.
	if err := coord.Delete(context.Background(), "seven"); err == nil {
		t.Fatalf("expected error from failed delete")
	}
	if _, ok := st.Get(7); !ok {
		t.Fatalf("post must survive a failed delete")
	}

	fail = false
	if err := coord.Delete(context.Background(), "seven"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := st.Get(7); ok {
		t.Fatalf("post must leave the collection after the backend confirms")
	}
}

func TestCreatePrependsServerPost(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /blogs/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{
			"id": 10, "slug": "fresh", "title": "Fresh",
		})
	})

	coord, st, _ := newTestCoordinator(t, mux, true)
	st.ReplaceAll([]models.Post{{ID: 1, Slug: "old"}}, 1)

	post, err := coord.Create(context.Background(), blogclient.PostInput{Title: "Fresh", Content: "body"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 10 || post.Slug != "fresh" {
		t.Fatalf("expected server-assigned id/slug, got %+v", post)
	}

	snap := st.Snapshot()
	if len(snap) != 2 || snap[0].ID != 10 {
		t.Fatalf("expected new post at the front, got %+v", snap)
	}
}

func TestRefreshListReplacesCollection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /blogs/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"count": 2,
			"results": []map[string]any{
				{"id": 1, "slug": "a", "title": "A"},
				{"id": 2, "slug": "b", "title": "B"},
			},
		})
	})

	coord, st, _ := newTestCoordinator(t, mux, true)
	st.ReplaceAll([]models.Post{{ID: 9, Slug: "stale"}}, 1)

	posts, total, err := coord.RefreshList(context.Background(), blogclient.ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 || total != 2 {
		t.Fatalf("expected 2 posts total 2, got %d/%d", len(posts), total)
	}
	if _, ok := st.Get(9); ok {
		t.Fatalf("stale post must be gone after replace")
	}
	if !coord.Synced() {
		t.Fatalf("expected Synced after a successful refresh")
	}
}

func TestCommentMutationRefetchesTree(t *testing.T) {
	created := false
	mux := http.NewServeMux()
	mux.HandleFunc("POST /comments/blog/4/", func(w http.ResponseWriter, r *http.Request) {
		created = true
		writeJSON(w, http.StatusCreated, map[string]any{"id": 2, "blog": 4, "content": "hi"})
	})
	mux.HandleFunc("GET /comments/blog/4/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "blog": 4, "content": "first"},
			{"id": 2, "blog": 4, "content": "hi"},
		})
	})

	coord, st, _ := newTestCoordinator(t, mux, true)
	st.ReplaceAll([]models.Post{{ID: 4, Slug: "four"}}, 1)

	tree, err := coord.CreateComment(context.Background(), 4, "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected the create endpoint to be called")
	}
	if len(tree) != 2 {
		t.Fatalf("expected refetched tree with 2 comments, got %d", len(tree))
	}

	post, _ := st.Get(4)
	if post.CommentsCount != 2 {
		t.Fatalf("expected comments_count recomputed to 2, got %d", post.CommentsCount)
	}
}

func TestCommentMutationRequiresAuth(t *testing.T) {
	requests := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	coord, _, _ := newTestCoordinator(t, handler, false)

	if _, err := coord.CreateComment(context.Background(), 4, "hi"); !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if requests != 0 {
		t.Fatalf("unauthenticated comment must not reach the backend")
	}
}
