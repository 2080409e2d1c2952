package blogclient

import (
	"encoding/json"
	"testing"
)

func TestDecodePostListShapes(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		wantLen   int
		wantTotal int
	}{
		{
			name:      "paginated envelope",
			body:      `{"count": 42, "results": [{"id": 1, "slug": "a"}, {"id": 2, "slug": "b"}]}`,
			wantLen:   2,
			wantTotal: 42,
		},
		{
			name:      "bare array",
			body:      `[{"id": 1, "slug": "a"}]`,
			wantLen:   1,
			wantTotal: 1,
		},
		{
			name:      "empty array",
			body:      `[]`,
			wantLen:   0,
			wantTotal: 0,
		},
		{
			name:      "empty body",
			body:      ``,
			wantLen:   0,
			wantTotal: 0,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			posts, total, err := decodePostList([]byte(testCase.body))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(posts) != testCase.wantLen {
				t.Fatalf("expected %d posts, got %d", testCase.wantLen, len(posts))
			}
			if total != testCase.wantTotal {
				t.Fatalf("expected total %d, got %d", testCase.wantTotal, total)
			}
		})
	}
}

func TestDecodePostListMalformed(t *testing.T) {
	if _, _, err := decodePostList([]byte(`{"results": "nope"`)); err == nil {
		t.Fatalf("expected error for malformed body")
	}
}

func TestWireCategoryShapes(t *testing.T) {
	testCases := []struct {
		name     string
		body     string
		wantName string
		wantID   int64
	}{
		{
			name:     "object form",
			body:     `{"id": 3, "name": "Programming", "color": "#fff"}`,
			wantName: "Programming",
			wantID:   3,
		},
		{
			name:     "string form",
			body:     `"Cooking"`,
			wantName: "Cooking",
		},
		{
			name: "null",
			body: `null`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var c wireCategory
			if err := json.Unmarshal([]byte(testCase.body), &c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Name != testCase.wantName || c.ID != testCase.wantID {
				t.Fatalf("expected name=%q id=%d, got name=%q id=%d",
					testCase.wantName, testCase.wantID, c.Name, c.ID)
			}
		})
	}
}

func TestNormalizeViewerFlags(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		wantLiked      bool
		wantBookmarked bool
	}{
		{
			name:      "is_liked variant",
			body:      `{"id": 1, "is_liked": true}`,
			wantLiked: true,
		},
		{
			name:      "user_has_liked variant",
			body:      `{"id": 1, "user_has_liked": true}`,
			wantLiked: true,
		},
		{
			name:           "user_has_bookmarked variant",
			body:           `{"id": 1, "user_has_bookmarked": true}`,
			wantBookmarked: true,
		},
		{
			name: "flags absent default to false",
			body: `{"id": 1}`,
		},
		{
			// 두 변형이 다 있으면 is_* 가 우선한다.
			name: "is_liked wins over user_has_liked",
			body: `{"id": 1, "is_liked": false, "user_has_liked": true}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var w wirePost
			if err := json.Unmarshal([]byte(testCase.body), &w); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			p := w.normalize()
			if p.Liked != testCase.wantLiked {
				t.Fatalf("expected liked=%v, got %v", testCase.wantLiked, p.Liked)
			}
			if p.Bookmarked != testCase.wantBookmarked {
				t.Fatalf("expected bookmarked=%v, got %v", testCase.wantBookmarked, p.Bookmarked)
			}
		})
	}
}
