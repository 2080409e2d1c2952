package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/services"
)

func bindAttachment(c *gin.Context, field string) (services.AttachmentInput, func(), bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: field + " file is required"})
		return services.AttachmentInput{}, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "cannot read " + field + " file"})
		return services.AttachmentInput{}, nil, false
	}

	order, _ := strconv.Atoi(c.PostForm("order"))
	in := services.AttachmentInput{
		FileName: fh.Filename,
		Reader:   f,
		Caption:  c.PostForm("caption"),
		Order:    order,
	}
	return in, func() { f.Close() }, true
}

// AddImageHandler godoc
// @Summary      Attach an image to a post
// @Tags         media
// @Accept       multipart/form-data
// @Param        id       path      int     true   "Post id"
// @Param        image    formData  file    true   "Image file"
// @Param        caption  formData  string  false  "Caption"
// @Param        order    formData  int     false  "Display order"
// @Produce      json
// @Success      201  {object}  dto.ImageDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /p/{id}/images [post]
func AddImageHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID, ok := blogIDParam(c)
		if !ok {
			return
		}
		in, closeFile, ok := bindAttachment(c, "image")
		if !ok {
			return
		}
		defer closeFile()

		img, err := svc.AddImage(c.Request.Context(), blogID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, img)
	}
}

// AddVideoHandler godoc
// @Summary      Attach a video to a post
// @Tags         media
// @Accept       multipart/form-data
// @Param        id       path      int     true   "Post id"
// @Param        video    formData  file    true   "Video file"
// @Param        caption  formData  string  false  "Caption"
// @Param        order    formData  int     false  "Display order"
// @Produce      json
// @Success      201  {object}  dto.VideoDTO
// @Failure      401  {object}  dto.ErrorResponseDTO
// @Router       /p/{id}/videos [post]
func AddVideoHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		blogID, ok := blogIDParam(c)
		if !ok {
			return
		}
		in, closeFile, ok := bindAttachment(c, "video")
		if !ok {
			return
		}
		defer closeFile()

		video, err := svc.AddVideo(c.Request.Context(), blogID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, video)
	}
}

// DeleteImageHandler godoc
// @Summary      Remove an attached image
// @Tags         media
// @Param        mediaId  path  int  true  "Image id"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /media/images/{mediaId} [delete]
func DeleteImageHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("mediaId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid media id"})
			return
		}
		if err := svc.DeleteImage(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}

// DeleteVideoHandler godoc
// @Summary      Remove an attached video
// @Tags         media
// @Param        mediaId  path  int  true  "Video id"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      403  {object}  dto.ErrorResponseDTO
// @Router       /media/videos/{mediaId} [delete]
func DeleteVideoHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("mediaId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid media id"})
			return
		}
		if err := svc.DeleteVideo(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}
