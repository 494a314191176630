package v1

import (
	"net/http"

	"portfolio-site/internal/delivery/http/prefstore"
	"portfolio-site/internal/delivery/http/response"
	"portfolio-site/internal/domain"
	"portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ThemeHandler struct {
	themeUC domain.ThemeUsecase
	stores  prefstore.Factory
}

// ThemeResponse is the theme payload returned by the API.
type ThemeResponse struct {
	Theme domain.ThemePreference `json:"theme" example:"dark"`
	Dark  bool                   `json:"dark" example:"true"`
}

func NewThemeHandler(public *gin.RouterGroup, themeUC domain.ThemeUsecase, stores prefstore.Factory) {
	handler := &ThemeHandler{themeUC: themeUC, stores: stores}

	theme := public.Group("/theme")
	{
		theme.GET("", handler.Get)
		theme.POST("/toggle", handler.Toggle)
	}
}

// Get godoc
// @Summary      Current Theme
// @Tags         theme
// @Produce      json
// @Success      200  {object}  response.Response{data=ThemeResponse}
// @Router       /theme [get]
func (h *ThemeHandler) Get(c *gin.Context) {
	pref, err := h.themeUC.Current(c.Request.Context(), h.stores(c))
	if err != nil {
		c.Error(apperror.ServiceUnavailable("Theme preference unavailable", err))
		return
	}
	response.Success(c, http.StatusOK, "OK", ThemeResponse{Theme: pref, Dark: pref.IsDark()})
}

// Toggle godoc
// @Summary      Toggle Theme
// @Description  Flip between dark and light and persist the result.
// @Tags         theme
// @Produce      json
// @Param        X-CSRF-Token  header    string  true  "CSRF token from the csrf_token cookie"
// @Success      200  {object}  response.Response{data=ThemeResponse}
// @Failure      403  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /theme/toggle [post]
func (h *ThemeHandler) Toggle(c *gin.Context) {
	pref, err := h.themeUC.Toggle(c.Request.Context(), h.stores(c))
	if err != nil {
		c.Error(apperror.ServiceUnavailable("Could not save theme preference", err))
		return
	}
	response.Success(c, http.StatusOK, "Theme updated", ThemeResponse{Theme: pref, Dark: pref.IsDark()})
}
