package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-canvas/cmd/gateway/auth"
	"blog-canvas/cmd/gateway/handlers"
	"blog-canvas/cmd/gateway/middleware"
	"blog-canvas/cmd/gateway/prefs"
	"blog-canvas/cmd/gateway/services"
	_ "blog-canvas/docs"
)

// Deps 는 라우터 조립에 필요한 구성 요소들이다. main 에서 한 번 만들어 주입한다.
type Deps struct {
	Blog     *services.BlogService
	Comments *services.CommentService
	AI       *services.AIService
	Session  *auth.Session
	Prefs    *prefs.Store
}

func New(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestTrace())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := d.Blog.Health(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "backend": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/posts", handlers.ListPostsHandler(d.Blog))
		api.POST("/posts", handlers.CreatePostHandler(d.Blog))
		api.POST("/posts/sync", handlers.SyncPostsHandler(d.Blog))
		api.GET("/posts/mine", handlers.MyPostsHandler(d.Blog))
		api.GET("/posts/bookmarked", handlers.BookmarkedPostsHandler(d.Blog))
		api.DELETE("/posts/selection", handlers.ClearSelectionHandler(d.Blog))
		api.GET("/posts/:slug", handlers.GetPostHandler(d.Blog))
		api.PUT("/posts/:slug", handlers.UpdatePostHandler(d.Blog))
		api.DELETE("/posts/:slug", handlers.DeletePostHandler(d.Blog))

		// 액션/댓글 라우트는 slug 라우트와의 충돌을 피하려고 /p/:id 아래에 둔다.
		// gin 은 같은 위치의 :slug 와 :id 파라미터 이름 충돌을 허용하지 않는다.
		api.POST("/p/:id/like", handlers.LikePostHandler(d.Blog))
		api.POST("/p/:id/bookmark", handlers.BookmarkPostHandler(d.Blog))
		api.GET("/p/:id/comments", handlers.ListCommentsHandler(d.Comments))
		api.POST("/p/:id/comments", handlers.CreateCommentHandler(d.Comments))
		api.POST("/p/:id/comments/:commentId/reply", handlers.ReplyCommentHandler(d.Comments))
		api.PUT("/p/:id/comments/:commentId", handlers.UpdateCommentHandler(d.Comments))
		api.DELETE("/p/:id/comments/:commentId", handlers.DeleteCommentHandler(d.Comments))

		api.POST("/p/:id/images", handlers.AddImageHandler(d.Blog))
		api.POST("/p/:id/videos", handlers.AddVideoHandler(d.Blog))
		api.DELETE("/media/images/:mediaId", handlers.DeleteImageHandler(d.Blog))
		api.DELETE("/media/videos/:mediaId", handlers.DeleteVideoHandler(d.Blog))

		api.GET("/tags", handlers.ListTagsHandler(d.Blog))
		api.GET("/categories", handlers.ListCategoriesHandler(d.Blog))

		api.POST("/ai/text", handlers.GenerateTextHandler(d.AI))
		api.POST("/ai/image", handlers.AnalyzeImageHandler(d.AI))
		api.POST("/ai/youtube", handlers.ProcessYouTubeHandler(d.AI))
		api.POST("/ai/video", handlers.GenerateVideoPlanHandler(d.AI))
		api.GET("/ai/history", handlers.AIHistoryHandler(d.AI))
		api.GET("/ai/stats", handlers.AIStatsHandler(d.AI))
		api.POST("/ai/draft", handlers.GenerateDraftHandler(d.AI))

		api.GET("/ui/theme", handlers.GetThemeHandler(d.Prefs))
		api.PUT("/ui/theme", handlers.SetThemeHandler(d.Prefs))
		api.POST("/ui/theme/toggle", handlers.ToggleThemeHandler(d.Prefs))

		api.GET("/session", handlers.GetSessionHandler(d.Session))
		api.PUT("/session/token", handlers.SetTokenHandler(d.Session))
		api.DELETE("/session/token", handlers.ClearTokenHandler(d.Session))
	}

	return r
}
