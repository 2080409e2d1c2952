package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/services"
)

// ListPostsHandler godoc
// @Summary      List posts
// @Description  List posts with conjunctive filters, stable sort and pagination
// @Tags         posts
// @Param        search     query  string    false  "Case-insensitive substring over title/content/author/category"
// @Param        category   query  string    false  "Category name (exact, case-insensitive)"
// @Param        tags       query  []string  false  "Tags (all must match)"
// @Param        author     query  string    false  "Author username or display name"
// @Param        date_from  query  string    false  "Created-at lower bound (RFC3339)"
// @Param        date_to    query  string    false  "Created-at upper bound (RFC3339)"
// @Param        sort_by    query  string    false  "created_at|updated_at|title|likes_count|views_count|comments_count"
// @Param        order      query  string    false  "asc|desc"
// @Param        page       query  int       false  "Page number (1-based)"
// @Param        page_size  query  int       false  "Page size"
// @Produce      json
// @Success      200  {object}  dto.PaginationPostDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /posts [get]
func ListPostsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListPostsInput
		in.Search = c.Query("search")
		in.Category = c.Query("category")
		in.Tags = c.QueryArray("tags")
		in.Author = c.Query("author")
		in.SortBy = c.Query("sort_by")
		in.SortOrder = c.DefaultQuery("order", "asc")
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "0"))

		if raw := c.Query("date_from"); raw != "" {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				in.DateFrom = t
			}
		}
		if raw := c.Query("date_to"); raw != "" {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				in.DateTo = t
			}
		}

		result, err := svc.List(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// SyncPostsHandler godoc
// @Summary      Re-sync the post collection
// @Description  Replace the local collection with the backend list
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /posts/sync [post]
func SyncPostsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.Sync(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "synced " + strconv.Itoa(n) + " posts"})
	}
}

// GetPostHandler godoc
// @Summary      Get post by slug
// @Description  Fetch a single post and make it the current selection
// @Tags         posts
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Failure      409  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug} [get]
func GetPostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.Get(c.Request.Context(), c.Param("slug"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// ClearSelectionHandler godoc
// @Summary      Clear the current selection
// @Tags         posts
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Router       /posts/selection [delete]
func ClearSelectionHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.ClearSelection()
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "selection cleared"})
	}
}

// bindPostInput 은 JSON 바디와 multipart 폼(featured_image 첨부 포함)을 모두
// 받아들인다. 에디터는 첨부가 있을 때만 multipart 로 보낸다.
func bindPostInput(c *gin.Context) (services.PostInput, func(), bool) {
	cleanup := func() {}

	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		var in services.PostInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return services.PostInput{}, cleanup, false
		}
		return in, cleanup, true
	}

	in := services.PostInput{
		Title:      c.PostForm("title"),
		Content:    c.PostForm("content"),
		LayoutType: c.PostForm("layout_type"),
	}
	if raw := c.PostForm("category_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			in.CategoryID = id
		}
	}
	if form, err := c.MultipartForm(); err == nil {
		in.Tags = form.Value["tags"]
	}
	if raw := c.PostForm("published"); raw != "" {
		published := raw == "true"
		in.Published = &published
	}
	if fh, err := c.FormFile("featured_image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "cannot read featured_image"})
			return services.PostInput{}, cleanup, false
		}
		cleanup = func() { f.Close() }
		in.FeaturedImage = &services.AttachmentInput{FileName: fh.Filename, Reader: f}
	}
	return in, cleanup, true
}

// CreatePostHandler godoc
// @Summary      Create a post
// @Description  Create a post on the backend, then prepend it locally and schedule a re-sync
// @Tags         posts
// @Accept       json
// @Accept       multipart/form-data
// @Param        post  body  services.PostInput  true  "Post fields"
// @Produce      json
// @Success      201  {object}  dto.PostDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts [post]
func CreatePostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, cleanup, ok := bindPostInput(c)
		if !ok {
			return
		}
		defer cleanup()

		post, err := svc.Create(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// UpdatePostHandler godoc
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Accept       multipart/form-data
// @Param        slug  path  string              true  "Post slug"
// @Param        post  body  services.PostInput  true  "Post fields"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug} [put]
func UpdatePostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, cleanup, ok := bindPostInput(c)
		if !ok {
			return
		}
		defer cleanup()

		post, err := svc.Update(c.Request.Context(), c.Param("slug"), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DeletePostHandler godoc
// @Summary      Delete a post
// @Description  Delete on the backend first; the post leaves the local collection only after the backend confirms
// @Tags         posts
// @Param        slug  path  string  true  "Post slug"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /posts/{slug} [delete]
func DeletePostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("slug")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}

// LikePostHandler godoc
// @Summary      Toggle like on a post
// @Description  Confirm-then-apply; the returned counters are the backend's values
// @Tags         posts
// @Param        id  path  int  true  "Post id"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/like [post]
func LikePostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid post id"})
			return
		}

		post, err := svc.Like(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// BookmarkPostHandler godoc
// @Summary      Toggle bookmark on a post
// @Tags         posts
// @Param        id  path  int  true  "Post id"
// @Produce      json
// @Success      200  {object}  dto.PostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/{id}/bookmark [post]
func BookmarkPostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid post id"})
			return
		}

		post, err := svc.Bookmark(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// MyPostsHandler godoc
// @Summary      List my posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   dto.PostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/mine [get]
func MyPostsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.MyPosts(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// BookmarkedPostsHandler godoc
// @Summary      List bookmarked posts
// @Tags         posts
// @Produce      json
// @Success      200  {array}   dto.PostDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /posts/bookmarked [get]
func BookmarkedPostsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		posts, err := svc.BookmarkedPosts(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// ListTagsHandler godoc
// @Summary      List tags
// @Tags         taxonomy
// @Produce      json
// @Success      200  {array}  dto.TagDTO
// @Router       /tags [get]
func ListTagsHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags, err := svc.Tags(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}

// ListCategoriesHandler godoc
// @Summary      List categories
// @Tags         taxonomy
// @Produce      json
// @Success      200  {array}  dto.CategoryDTO
// @Router       /categories [get]
func ListCategoriesHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}
