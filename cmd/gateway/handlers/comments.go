package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/services"
)

type commentInput struct {
	Content string `json:"content"`
}

func blogIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid post id"})
		return 0, false
	}
	return id, true
}

func commentIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid comment id"})
		return 0, false
	}
	return id, true
}

func bindCommentContent(c *gin.Context) (string, bool) {
	var in commentInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Content) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "content is required"})
		return "", false
	}
	return in.Content, true
}

// ListCommentsHandler godoc
// @Summary      Get the comment tree of a post
// @Tags         comments
// @Param        id  path  int  true  "Post id"
// @Produce      json
// @Success      200  {array}  dto.CommentDTO
// @Router       /posts/{id}/comments [get]
func ListCommentsHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID, ok := blogIDParam(c)
		if !ok {
			return
		}

		tree, err := svc.List(c.Request.Context(), blogID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	}
}

// CreateCommentHandler godoc
// @Summary      Add a comment to a post
// @Description  The whole tree is re-fetched after the backend confirms, and returned
// @Tags         comments
// @Accept       json
// @Param        id       path  int           true  "Post id"
// @Param        comment  body  commentInput  true  "Comment content"
// @Produce      json
// @Success      201  {array}   dto.CommentDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/comments [post]
func CreateCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID, ok := blogIDParam(c)
		if !ok {
			return
		}
		content, ok := bindCommentContent(c)
		if !ok {
			return
		}

		tree, err := svc.Create(c.Request.Context(), blogID, content)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tree)
	}
}

// ReplyCommentHandler godoc
// @Summary      Reply to a comment
// @Tags         comments
// @Accept       json
// @Param        id         path  int           true  "Post id"
// @Param        commentId  path  int           true  "Parent comment id"
// @Param        comment    body  commentInput  true  "Reply content"
// @Produce      json
// @Success      201  {array}   dto.CommentDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/comments/{commentId}/reply [post]
func ReplyCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID, ok := blogIDParam(c)
		if !ok {
			return
		}
		commentID, ok := commentIDParam(c)
		if !ok {
			return
		}
		content, ok := bindCommentContent(c)
		if !ok {
			return
		}

		tree, err := svc.Reply(c.Request.Context(), blogID, commentID, content)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tree)
	}
}

// UpdateCommentHandler godoc
// @Summary      Edit a comment
// @Tags         comments
// @Accept       json
// @Param        id         path  int           true  "Post id"
// @Param        commentId  path  int           true  "Comment id"
// @Param        comment    body  commentInput  true  "New content"
// @Produce      json
// @Success      200  {array}   dto.CommentDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/comments/{commentId} [put]
func UpdateCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID, ok := blogIDParam(c)
		if !ok {
			return
		}
		commentID, ok := commentIDParam(c)
		if !ok {
			return
		}
		content, ok := bindCommentContent(c)
		if !ok {
			return
		}

		tree, err := svc.Update(c.Request.Context(), blogID, commentID, content)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	}
}

// DeleteCommentHandler godoc
// @Summary      Delete a comment
// @Tags         comments
// @Param        id         path  int  true  "Post id"
// @Param        commentId  path  int  true  "Comment id"
// @Produce      json
// @Success      200  {array}   dto.CommentDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/comments/{commentId} [delete]
func DeleteCommentHandler(svc *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID, ok := blogIDParam(c)
		if !ok {
			return
		}
		commentID, ok := commentIDParam(c)
		if !ok {
			return
		}

		tree, err := svc.Delete(c.Request.Context(), blogID, commentID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tree)
	}
}
