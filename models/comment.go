package models

import "time"

// Comment 는 하나의 Post(BlogID)에 속하거나, ParentID 를 통해 다른 댓글의
// 답글이 된다. 트리는 어떤 변경이든 서버에서 통째로 다시 가져오기 때문에
// 로컬에서 부분 패치하지 않는다.
type Comment struct {
	ID           int64     `json:"id"`
	BlogID       int64     `json:"blog"`
	Author       User      `json:"author"`
	Content      string    `json:"content"`
	ParentID     *int64    `json:"parent,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Replies      []Comment `json:"replies"`
	RepliesCount int       `json:"replies_count"`
}

// Edited 는 생성 이후 수정된 적이 있는지 반환한다.
// created_at 과 updated_at 이 같으면 수정되지 않은 것으로 본다.
func (c Comment) Edited() bool {
	return !c.UpdatedAt.Equal(c.CreatedAt)
}

// TreeSize 는 자신과 모든 답글을 포함한 댓글 수를 반환한다.
func (c Comment) TreeSize() int {
	n := 1
	for _, r := range c.Replies {
		n += r.TreeSize()
	}
	return n
}
