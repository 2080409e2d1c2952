package view

import (
	"testing"
	"time"

	"blog-canvas/models"
)

func samplePosts() []models.Post {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return []models.Post{
		{
			ID: 1, Slug: "intro-to-rust", Title: "Intro to Rust",
			Content:  "Ownership and borrowing explained.",
			Author:   models.User{ID: 10, Username: "alice", FirstName: "Alice", LastName: "Kim"},
			Category: models.Category{ID: 1, Name: "Programming"},
			Tags:     []models.Tag{{Name: "rust"}, {Name: "systems"}},
			LikesCount: 5, ViewsCount: 120,
			CreatedAt: base,
		},
		{
			ID: 2, Slug: "go-concurrency", Title: "Go Concurrency Patterns",
			Content:  "Channels, goroutines, pipelines.",
			Author:   models.User{ID: 11, Username: "bob"},
			Category: models.Category{ID: 1, Name: "Programming"},
			Tags:     []models.Tag{{Name: "go"}},
			LikesCount: 9, ViewsCount: 300,
			CreatedAt: base.Add(24 * time.Hour),
		},
		{
			ID: 3, Slug: "sourdough", Title: "Sourdough Basics",
			Content:  "A trusty starter recipe.",
			Author:   models.User{ID: 10, Username: "alice", FirstName: "Alice", LastName: "Kim"},
			Category: models.Category{ID: 2, Name: "Cooking"},
			Tags:     []models.Tag{{Name: "baking"}},
			LikesCount: 9, ViewsCount: 80,
			CreatedAt: base.Add(48 * time.Hour),
		},
	}
}

func ids(posts []models.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a []int64, b ...int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplySearch(t *testing.T) {
	posts := samplePosts()

	testCases := []struct {
		name   string
		search string
		want   []int64
	}{
		{name: "title match case-insensitive", search: "rust", want: []int64{1}},
		{name: "content match", search: "goroutines", want: []int64{2}},
		{name: "author display name match", search: "alice kim", want: []int64{1, 3}},
		{name: "category match", search: "cooking", want: []int64{3}},
		{name: "no match", search: "quantum", want: []int64{}},
		{name: "empty search passes everything", search: "", want: []int64{1, 2, 3}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := ids(Apply(posts, Filter{Search: testCase.search}))
			if !equalIDs(got, testCase.want...) {
				t.Fatalf("expected %v, got %v", testCase.want, got)
			}
		})
	}
}

func TestApplyConjunctiveFilters(t *testing.T) {
	posts := samplePosts()

	// 카테고리와 검색이 동시에 걸리면 둘 다 만족해야 한다.
	got := ids(Apply(posts, Filter{Search: "a", Category: "programming"}))
	for _, id := range got {
		if id == 3 {
			t.Fatalf("cooking post leaked through category filter: %v", got)
		}
	}

	got = ids(Apply(posts, Filter{Tags: []string{"rust", "systems"}}))
	if !equalIDs(got, 1) {
		t.Fatalf("expected only post 1 to carry both tags, got %v", got)
	}

	got = ids(Apply(posts, Filter{Tags: []string{"rust", "go"}}))
	if len(got) != 0 {
		t.Fatalf("no post carries both rust and go, got %v", got)
	}

	got = ids(Apply(posts, Filter{Author: "alice", Category: "cooking"}))
	if !equalIDs(got, 3) {
		t.Fatalf("expected post 3, got %v", got)
	}
}

func TestApplyDateRange(t *testing.T) {
	posts := samplePosts()
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC)

	got := ids(Apply(posts, Filter{DateFrom: from, DateTo: to}))
	if !equalIDs(got, 2) {
		t.Fatalf("expected post 2 in range, got %v", got)
	}
}

func TestApplySortStable(t *testing.T) {
	posts := samplePosts()

	// likes_count 가 같은 2번/3번은 캐노니컬 순서(2 먼저)를 유지해야 한다.
	got := ids(Apply(posts, Filter{SortBy: SortByLikes, SortOrder: SortDesc}))
	if !equalIDs(got, 2, 3, 1) {
		t.Fatalf("expected stable desc order [2 3 1], got %v", got)
	}

	got = ids(Apply(posts, Filter{SortBy: SortByCreatedAt, SortOrder: SortAsc}))
	if !equalIDs(got, 1, 2, 3) {
		t.Fatalf("expected asc created order [1 2 3], got %v", got)
	}

	// 모르는 정렬 키는 캐노니컬 순서를 그대로 둔다.
	got = ids(Apply(posts, Filter{SortBy: "nonsense"}))
	if !equalIDs(got, 1, 2, 3) {
		t.Fatalf("expected canonical order for unknown sort key, got %v", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	posts := samplePosts()
	Apply(posts, Filter{SortBy: SortByLikes, SortOrder: SortDesc})

	if !equalIDs(ids(posts), 1, 2, 3) {
		t.Fatalf("input slice was reordered: %v", ids(posts))
	}
}

func TestPaginate(t *testing.T) {
	posts := samplePosts()

	testCases := []struct {
		name     string
		page     int
		pageSize int
		want     []int64
	}{
		{name: "first page", page: 1, pageSize: 2, want: []int64{1, 2}},
		{name: "second page", page: 2, pageSize: 2, want: []int64{3}},
		{name: "out of range", page: 5, pageSize: 2, want: []int64{}},
		{name: "zero page defaults to first", page: 0, pageSize: 2, want: []int64{1, 2}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			page := Paginate(posts, testCase.page, testCase.pageSize)
			if !equalIDs(ids(page.Posts), testCase.want...) {
				t.Fatalf("expected %v, got %v", testCase.want, ids(page.Posts))
			}
			if page.Total != len(posts) {
				t.Fatalf("expected total %d, got %d", len(posts), page.Total)
			}
		})
	}
}
