package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/services"
)

type textPromptInput struct {
	Prompt string `json:"prompt"`
}

type youtubeInput struct {
	YouTubeURL string `json:"youtube_url"`
}

type videoPlanInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GenerateTextHandler godoc
// @Summary      Generate blog text from a prompt
// @Tags         ai
// @Accept       json
// @Param        input  body  textPromptInput  true  "Prompt"
// @Produce      json
// @Success      200  {object}  dto.GeneratedTextDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /ai/text [post]
func GenerateTextHandler(svc *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in textPromptInput
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Prompt) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "prompt is required"})
			return
		}

		result, err := svc.GenerateText(c.Request.Context(), in.Prompt)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// AnalyzeImageHandler godoc
// @Summary      Generate text from an image
// @Description  Accepts either a multipart image file or an image_url form field
// @Tags         ai
// @Accept       multipart/form-data
// @Param        image          formData  file    false  "Image file"
// @Param        image_url      formData  string  false  "Image URL"
// @Param        analysis_type  formData  string  false  "description|blog_content|alt_text"
// @Produce      json
// @Success      200  {object}  dto.ImageAnalysisDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /ai/image [post]
func AnalyzeImageHandler(svc *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		in := services.AnalyzeImageInput{
			ImageURL:     c.PostForm("image_url"),
			AnalysisType: c.PostForm("analysis_type"),
		}

		if fh, err := c.FormFile("image"); err == nil {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "cannot read image file"})
				return
			}
			defer f.Close()
			in.FileName = fh.Filename
			in.Reader = f
		}

		if in.Reader == nil && in.ImageURL == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "image file or image_url is required"})
			return
		}

		result, err := svc.AnalyzeImage(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ProcessYouTubeHandler godoc
// @Summary      Turn a YouTube video into blog content
// @Tags         ai
// @Accept       json
// @Param        input  body  youtubeInput  true  "Video URL"
// @Produce      json
// @Success      200  {object}  dto.YouTubeDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /ai/youtube [post]
func ProcessYouTubeHandler(svc *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in youtubeInput
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.YouTubeURL) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "youtube_url is required"})
			return
		}

		result, err := svc.ProcessYouTube(c.Request.Context(), in.YouTubeURL)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GenerateVideoPlanHandler godoc
// @Summary      Generate a video script and production notes
// @Tags         ai
// @Accept       json
// @Param        input  body  videoPlanInput  true  "Title and description"
// @Produce      json
// @Success      200  {object}  dto.VideoPlanDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /ai/video [post]
func GenerateVideoPlanHandler(svc *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in videoPlanInput
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Title) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "title is required"})
			return
		}

		result, err := svc.GenerateVideoPlan(c.Request.Context(), in.Title, in.Description)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// AIHistoryHandler godoc
// @Summary      List recent AI generations
// @Tags         ai
// @Param        type  query  string  false  "Filter by content type"
// @Produce      json
// @Success      200  {array}  dto.GenerationHistoryDTO
// @Router       /ai/history [get]
func AIHistoryHandler(svc *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.History(c.Request.Context(), c.Query("type"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// AIStatsHandler godoc
// @Summary      AI generation stats
// @Tags         ai
// @Produce      json
// @Success      200  {object}  dto.GenerationStatsDTO
// @Router       /ai/stats [get]
func AIStatsHandler(svc *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.Stats(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GenerateDraftHandler godoc
// @Summary      Generate a blog draft from a topic
// @Description  Uses the retrieval-augmented generation service and reshapes the result for the editor
// @Tags         ai
// @Accept       json
// @Param        input  body  services.DraftInput  true  "Draft parameters"
// @Produce      json
// @Success      200  {object}  dto.DraftDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Router       /ai/draft [post]
func GenerateDraftHandler(svc *services.AIService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.DraftInput
		if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Topic) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "topic is required"})
			return
		}

		draft, err := svc.GenerateDraft(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, draft)
	}
}
