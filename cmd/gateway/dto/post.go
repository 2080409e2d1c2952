package dto

import (
	"time"

	"blog-canvas/models"
)

// UserDTO 는 작성자 표시에 필요한 최소 필드만 노출한다.
type UserDTO struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

func NewUserDTO(u models.User) UserDTO {
	d := UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName(),
	}
	if u.Profile != nil {
		d.Avatar = u.Profile.Avatar
		d.Bio = u.Profile.Bio
	}
	return d
}

type CategoryDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Color string `json:"color,omitempty"`
}

func NewCategoryDTO(c models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Slug: c.Slug, Color: c.Color}
}

type TagDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewTagDTO(t models.Tag) TagDTO {
	return TagDTO{ID: t.ID, Name: t.Name}
}

type ImageDTO struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

type VideoDTO struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Order   int    `json:"order"`
}

// PostDTO 는 목록/상세 화면이 쓰는 포스트 표현이다.
// liked/bookmarked 플래그와 카운터는 항상 서버가 확인해 준 값이다.
type PostDTO struct {
	ID            int64       `json:"id"`
	Slug          string      `json:"slug"`
	Title         string      `json:"title"`
	Content       string      `json:"content"`
	Author        UserDTO     `json:"author"`
	Category      CategoryDTO `json:"category"`
	Tags          []TagDTO    `json:"tags"`
	LayoutType    string      `json:"layout_type,omitempty"`
	FeaturedImage string      `json:"featured_image,omitempty"`
	Images        []ImageDTO  `json:"images,omitempty"`
	Videos        []VideoDTO  `json:"videos,omitempty"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	ViewsCount    int         `json:"views_count"`
	Liked         bool        `json:"liked"`
	Bookmarked    bool        `json:"bookmarked"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// NewPostDTO constructs PostDTO from models.Post
func NewPostDTO(p models.Post) PostDTO {
	tags := make([]TagDTO, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, NewTagDTO(t))
	}
	images := make([]ImageDTO, 0, len(p.Images))
	for _, im := range p.Images {
		images = append(images, ImageDTO{ID: im.ID, URL: im.URL, Caption: im.Caption, Order: im.Order})
	}
	videos := make([]VideoDTO, 0, len(p.Videos))
	for _, v := range p.Videos {
		videos = append(videos, VideoDTO{ID: v.ID, URL: v.URL, Caption: v.Caption, Order: v.Order})
	}
	return PostDTO{
		ID:            p.ID,
		Slug:          p.Slug,
		Title:         p.Title,
		Content:       p.Content,
		Author:        NewUserDTO(p.Author),
		Category:      NewCategoryDTO(p.Category),
		Tags:          tags,
		LayoutType:    p.LayoutType,
		FeaturedImage: p.FeaturedImage,
		Images:        images,
		Videos:        videos,
		LikesCount:    p.LikesCount,
		CommentsCount: p.CommentsCount,
		ViewsCount:    p.ViewsCount,
		Liked:         p.Liked,
		Bookmarked:    p.Bookmarked,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func NewPostDTOs(posts []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostDTO(p))
	}
	return out
}
