package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-canvas/cmd/gateway/auth"
	"blog-canvas/cmd/gateway/dto"
	"blog-canvas/cmd/gateway/prefs"
)

// GetThemeHandler godoc
// @Summary      Get the UI theme
// @Tags         ui
// @Produce      json
// @Success      200  {object}  dto.ThemeDTO
// @Router       /ui/theme [get]
func GetThemeHandler(store *prefs.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.ThemeDTO{Theme: store.Theme()})
	}
}

// SetThemeHandler godoc
// @Summary      Set the UI theme
// @Description  Persisted to disk so it survives restarts
// @Tags         ui
// @Accept       json
// @Param        theme  body  dto.ThemeDTO  true  "dark or light"
// @Produce      json
// @Success      200  {object}  dto.ThemeDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /ui/theme [put]
func SetThemeHandler(store *prefs.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.ThemeDTO
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body"})
			return
		}
		if err := store.SetTheme(in.Theme); err != nil {
			if errors.Is(err, prefs.ErrInvalidTheme) {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
				return
			}
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ThemeDTO{Theme: store.Theme()})
	}
}

// ToggleThemeHandler godoc
// @Summary      Toggle the UI theme
// @Tags         ui
// @Produce      json
// @Success      200  {object}  dto.ThemeDTO
// @Router       /ui/theme/toggle [post]
func ToggleThemeHandler(store *prefs.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		theme, err := store.Toggle()
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.ThemeDTO{Theme: theme})
	}
}

// GetSessionHandler godoc
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionDTO
// @Router       /session [get]
func GetSessionHandler(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.SessionDTO{
			SessionID:     session.ID(),
			Authenticated: session.Authenticated(),
		})
	}
}

type tokenInput struct {
	Token string `json:"token"`
}

// SetTokenHandler godoc
// @Summary      Set the backend access token
// @Description  Accepts the token from the Authorization header, or from the JSON body as a fallback
// @Tags         session
// @Accept       json
// @Param        Authorization  header  string      false  "Bearer token"
// @Param        token          body    tokenInput  false  "Bearer token"
// @Produce      json
// @Success      200  {object}  dto.SessionDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /session/token [put]
func SetTokenHandler(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			var in tokenInput
			if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Token) == "" {
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "token is required"})
				return
			}
			token = in.Token
		}

		session.SetToken(token)
		c.JSON(http.StatusOK, dto.SessionDTO{
			SessionID:     session.ID(),
			Authenticated: session.Authenticated(),
		})
	}
}

// ClearTokenHandler godoc
// @Summary      Drop the backend access token
// @Tags         session
// @Produce      json
// @Success      200  {object}  dto.SessionDTO
// @Router       /session/token [delete]
func ClearTokenHandler(session *auth.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Clear()
		c.JSON(http.StatusOK, dto.SessionDTO{
			SessionID:     session.ID(),
			Authenticated: session.Authenticated(),
		})
	}
}
