package dto

import (
	"time"

	"blog-canvas/models"
)

// CommentDTO 는 중첩 트리를 그대로 내려준다. 트리 구조는 서버 재조회로만
// 바뀌므로 부분 업데이트용 필드는 없다.
type CommentDTO struct {
	ID        int64        `json:"id"`
	BlogID    int64        `json:"blog_id"`
	Author    UserDTO      `json:"author"`
	Content   string       `json:"content"`
	ParentID  *int64       `json:"parent_id,omitempty"`
	Edited    bool         `json:"edited"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Replies   []CommentDTO `json:"replies,omitempty"`
}

// NewCommentDTO constructs CommentDTO from models.Comment
func NewCommentDTO(c models.Comment) CommentDTO {
	replies := make([]CommentDTO, 0, len(c.Replies))
	for _, r := range c.Replies {
		replies = append(replies, NewCommentDTO(r))
	}
	return CommentDTO{
		ID:        c.ID,
		BlogID:    c.BlogID,
		Author:    NewUserDTO(c.Author),
		Content:   c.Content,
		ParentID:  c.ParentID,
		Edited:    c.Edited(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Replies:   replies,
	}
}

func NewCommentDTOs(tree []models.Comment) []CommentDTO {
	out := make([]CommentDTO, 0, len(tree))
	for _, c := range tree {
		out = append(out, NewCommentDTO(c))
	}
	return out
}
