package view

import (
	"context"
	"errors"
	"testing"

	"blog-canvas/models"
)

func TestSelectionAppliesLatest(t *testing.T) {
	s := NewSelection()

	post, err := s.Select(context.Background(), func(ctx context.Context) (models.Post, error) {
		return models.Post{ID: 7, Slug: "seven"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 7 {
		t.Fatalf("expected post 7, got %d", post.ID)
	}

	id, ok := s.Current()
	if !ok || id != 7 {
		t.Fatalf("expected current selection 7, got %d (ok=%v)", id, ok)
	}
}

func TestSelectionDiscardsStaleResponse(t *testing.T) {
	s := NewSelection()

	// 첫 번째 조회가 느려서 fetch 도중 두 번째 선택이 완료된 상황을 만든다.
	firstFetch := func(ctx context.Context) (models.Post, error) {
		if _, err := s.Select(ctx, func(ctx context.Context) (models.Post, error) {
			return models.Post{ID: 2}, nil
		}); err != nil {
			t.Fatalf("inner select failed: %v", err)
		}
		return models.Post{ID: 1}, nil
	}

	_, err := s.Select(context.Background(), firstFetch)
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for the overtaken fetch, got %v", err)
	}

	id, ok := s.Current()
	if !ok || id != 2 {
		t.Fatalf("expected the newer selection 2 to win, got %d (ok=%v)", id, ok)
	}
}

func TestSelectionClearInvalidatesInflight(t *testing.T) {
	s := NewSelection()

	_, err := s.Select(context.Background(), func(ctx context.Context) (models.Post, error) {
		s.Clear()
		return models.Post{ID: 9}, nil
	})
	if !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale after Clear, got %v", err)
	}

	if _, ok := s.Current(); ok {
		t.Fatalf("expected no current selection after Clear")
	}
}

func TestSelectionFetchError(t *testing.T) {
	s := NewSelection()

	fetchErr := errors.New("boom")
	_, err := s.Select(context.Background(), func(ctx context.Context) (models.Post, error) {
		return models.Post{}, fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("failed fetch must not leave a selection")
	}
}
