package models

import "time"

// Category 는 정규화된 카테고리 형태다. 백엔드가 객체 대신 이름 문자열만 내려주는
// 경우에도 클라이언트 경계에서 이 형태로 맞춰진다(그 경우 ID 는 0).
type Category struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type Tag struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type Image struct {
	ID      int64  `json:"id"`
	URL     string `json:"image"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

type Video struct {
	ID      int64  `json:"id"`
	URL     string `json:"video"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

// Post 는 캐노니컬 컬렉션의 단위 엔티티다. 같은 ID 의 표현은 컬렉션 안에
// 정확히 하나만 존재하고, 목록/상세 화면은 전부 여기서 파생된다.
//
// 카운터(likes/comments/views)는 서버 소유 값이라 로컬에서 증감하지 않는다.
// Liked/Bookmarked 는 현재 세션의 뷰어 기준 플래그다.
type Post struct {
	ID            int64     `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Author        User      `json:"author"`
	Category      Category  `json:"category"`
	Tags          []Tag     `json:"tags"`
	LayoutType    string    `json:"layout_type,omitempty"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	Images        []Image   `json:"images,omitempty"`
	Videos        []Video   `json:"videos,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	ViewsCount    int       `json:"views_count"`
	Liked         bool      `json:"is_liked"`
	Bookmarked    bool      `json:"is_bookmarked"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasTag 는 이름 기준으로 태그 포함 여부를 확인한다.
func (p Post) HasTag(name string) bool {
	for _, t := range p.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}
