package main

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/cors"

	"blog-canvas/cmd/gateway/auth"
	"blog-canvas/cmd/gateway/clients/aiclient"
	"blog-canvas/cmd/gateway/clients/blogclient"
	"blog-canvas/cmd/gateway/clients/ragclient"
	"blog-canvas/cmd/gateway/httpclient"
	"blog-canvas/cmd/gateway/prefs"
	"blog-canvas/cmd/gateway/router"
	"blog-canvas/cmd/gateway/services"
	"blog-canvas/cmd/gateway/store"
	"blog-canvas/cmd/internal/logger"
	"blog-canvas/config"
	_ "blog-canvas/docs" // swag will generate this package
)

// @title           Blog Canvas Gateway API
// @version         1.0
// @description     Local gateway keeping a canonical post collection in sync with the blog backend
// @BasePath        /api/v1
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	session := auth.NewSessionFromEnv()

	httpClient := httpclient.New(httpclient.Config{
		Timeout: time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
	})

	blogAPI := blogclient.NewWithHTTPClient(httpClient, cfg.Backend.BlogAPIBaseURL, session)
	aiAPI := aiclient.NewWithHTTPClient(httpClient, cfg.Backend.BlogAPIBaseURL, session)
	ragAPI := ragclient.NewWithHTTPClient(httpClient, cfg.Backend.RAGBaseURL)

	st := store.New()
	coord := store.NewCoordinator(st, blogAPI, session,
		time.Duration(cfg.UI.SearchDebounceMillis)*time.Millisecond)
	defer coord.Close()

	deps := router.Deps{
		Blog:     services.NewBlogService(st, coord, blogAPI, cfg.UI.DefaultPageSize),
		Comments: services.NewCommentService(st, coord),
		AI:       services.NewAIService(aiAPI, ragAPI),
		Session:  session,
		Prefs:    prefs.Load(filepath.Join(config.GetBasePath(), cfg.UI.ThemeFile)),
	}
	r := router.New(deps)

	// 브라우저 SPA 가 직접 호출하는 로컬 게이트웨이라서 CORS 를 열어 둔다.
	handler := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id", "X-Span-Id"},
	}).Handler(r)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}

	logger.InfoWithFields("gateway listening", logger.Fields{
		"addr":          addr,
		"blog_api":      cfg.Backend.BlogAPIBaseURL,
		"rag_api":       cfg.Backend.RAGBaseURL,
		"authenticated": session.Authenticated(),
	})

	if err := http.ListenAndServe(addr, handler); err != nil && err != http.ErrServerClosed {
		logger.Log.Error(err)
		os.Exit(1)
	}
}
