package services

import (
	"context"

	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/store"
)

// CommentService 는 포스트별 댓글 트리를 다룬다.
// 어떤 변경이든 코디네이터가 트리를 통째로 재조회하므로, 여기서 돌려주는
// 트리는 항상 서버가 마지막으로 확인해 준 상태다.
type CommentService struct {
	store *store.Store
	coord *store.Coordinator
}

func NewCommentService(st *store.Store, coord *store.Coordinator) *CommentService {
	return &CommentService{store: st, coord: coord}
}

// List 는 댓글 트리를 반환한다. 캐시가 있으면 캐시를 쓰고, 처음이면 서버에서
// 가져온다.
func (s *CommentService) List(ctx context.Context, blogID int64) ([]dto.CommentDTO, error) {
	if tree, ok := s.store.Comments(blogID); ok {
		return dto.NewCommentDTOs(tree), nil
	}
	tree, err := s.coord.RefreshComments(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentDTOs(tree), nil
}

// Refresh 는 캐시를 무시하고 서버에서 트리를 다시 가져온다.
func (s *CommentService) Refresh(ctx context.Context, blogID int64) ([]dto.CommentDTO, error) {
	tree, err := s.coord.RefreshComments(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentDTOs(tree), nil
}

func (s *CommentService) Create(ctx context.Context, blogID int64, content string) ([]dto.CommentDTO, error) {
	tree, err := s.coord.CreateComment(ctx, blogID, content)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentDTOs(tree), nil
}

func (s *CommentService) Reply(ctx context.Context, blogID, commentID int64, content string) ([]dto.CommentDTO, error) {
	tree, err := s.coord.ReplyComment(ctx, blogID, commentID, content)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentDTOs(tree), nil
}

func (s *CommentService) Update(ctx context.Context, blogID, commentID int64, content string) ([]dto.CommentDTO, error) {
	tree, err := s.coord.UpdateComment(ctx, blogID, commentID, content)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentDTOs(tree), nil
}

func (s *CommentService) Delete(ctx context.Context, blogID, commentID int64) ([]dto.CommentDTO, error) {
	tree, err := s.coord.DeleteComment(ctx, blogID, commentID)
	if err != nil {
		return nil, err
	}
	return dto.NewCommentDTOs(tree), nil
}
