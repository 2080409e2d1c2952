package blogclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"blog-canvas/models"
)

// 이 파일은 백엔드 응답을 캐노니컬 형태로 정규화한다.
//
// 백엔드는 버전/엔드포인트에 따라 두 가지 변형을 섞어 내려준다.
// - 목록: 페이지네이션 envelope {results, count} 또는 bare array
// - category: 중첩 객체 {id, name, color} 또는 이름 문자열
// - 뷰어 플래그: is_liked/user_has_liked, is_bookmarked/user_has_bookmarked
// 전부 경계에서 흡수하고, 다운스트림은 models.Post 하나만 본다.

// wireCategory 는 객체 형태와 문자열 형태를 모두 받아들인다.
type wireCategory struct {
	models.Category
}

func (c *wireCategory) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		c.Category = models.Category{Name: name}
		return nil
	}
	return json.Unmarshal(b, &c.Category)
}

type wirePost struct {
	ID                int64           `json:"id"`
	Slug              string          `json:"slug"`
	Title             string          `json:"title"`
	Content           string          `json:"content"`
	Author            models.User     `json:"author"`
	Category          wireCategory    `json:"category"`
	Tags              []models.Tag    `json:"tags"`
	LayoutType        string          `json:"layout_type"`
	FeaturedImage     string          `json:"featured_image"`
	Images            []models.Image  `json:"images"`
	Videos            []models.Video  `json:"videos"`
	LikesCount        int             `json:"likes_count"`
	CommentsCount     int             `json:"comments_count"`
	ViewsCount        int             `json:"views_count"`
	IsLiked           *bool           `json:"is_liked"`
	UserHasLiked      *bool           `json:"user_has_liked"`
	IsBookmarked      *bool           `json:"is_bookmarked"`
	UserHasBookmarked *bool           `json:"user_has_bookmarked"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func firstFlag(candidates ...*bool) bool {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return false
}

func (w wirePost) normalize() models.Post {
	return models.Post{
		ID:            w.ID,
		Slug:          w.Slug,
		Title:         w.Title,
		Content:       w.Content,
		Author:        w.Author,
		Category:      w.Category.Category,
		Tags:          w.Tags,
		LayoutType:    w.LayoutType,
		FeaturedImage: w.FeaturedImage,
		Images:        w.Images,
		Videos:        w.Videos,
		LikesCount:    w.LikesCount,
		CommentsCount: w.CommentsCount,
		ViewsCount:    w.ViewsCount,
		Liked:         firstFlag(w.IsLiked, w.UserHasLiked),
		Bookmarked:    firstFlag(w.IsBookmarked, w.UserHasBookmarked),
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func normalizePosts(ws []wirePost) []models.Post {
	out := make([]models.Post, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.normalize())
	}
	return out
}

type listEnvelope struct {
	Results []wirePost `json:"results"`
	Count   int        `json:"count"`
}

// decodePostList 는 envelope 형태와 bare array 형태를 같은 (posts, total)로 맞춘다.
// bare array 에는 count 가 없으므로 total 은 목록 길이가 된다.
func decodePostList(data []byte) ([]models.Post, int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []models.Post{}, 0, nil
	}

	if trimmed[0] == '[' {
		var ws []wirePost
		if err := json.Unmarshal(trimmed, &ws); err != nil {
			return nil, 0, fmt.Errorf("decode post list: %w", err)
		}
		posts := normalizePosts(ws)
		return posts, len(posts), nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, 0, fmt.Errorf("decode post page: %w", err)
	}
	return normalizePosts(env.Results), env.Count, nil
}
