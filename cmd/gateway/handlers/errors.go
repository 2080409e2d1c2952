package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"blog-canvas/cmd/gateway/apierr"
	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/view"
	"blog-canvas/cmd/internal/logger"
)

// writeError 는 에러 분류를 HTTP 상태 코드와 공통 응답 형태로 매핑한다.
// 분류별 안내 문구는 화면에 그대로 노출해도 되는 수준으로 유지한다.
func writeError(c *gin.Context, err error) {
	var ve *apierr.ValidationError
	var ne *apierr.NetworkError

	switch {
	case errors.Is(err, apierr.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponseDTO{Error: "authentication required"})
	case errors.Is(err, apierr.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponseDTO{Error: "you do not have permission to do that"})
	case errors.Is(err, apierr.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "not found"})
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "validation failed", Fields: ve.Fields})
	case errors.As(err, &ne):
		c.JSON(http.StatusBadGateway, dto.ErrorResponseDTO{Error: "backend unreachable, check your connection"})
	case errors.Is(err, view.ErrStale):
		// 추월당한 상세 조회. 화면에 반영하면 안 되는 결과라서 본문 없이 알린다.
		c.JSON(http.StatusConflict, dto.ErrorResponseDTO{Error: "superseded by a newer selection"})
	default:
		logger.ErrorWithFields("unhandled error", logger.Fields{"error": err.Error(), "path": c.Request.URL.Path})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "internal error"})
	}
}
