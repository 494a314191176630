package v1

import (
	"net/http"

	"portfolio-site/internal/delivery/http/response"
	"portfolio-site/internal/domain"
	"portfolio-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	content domain.ContentRepository
}

func NewContentHandler(public *gin.RouterGroup, content domain.ContentRepository) {
	handler := &ContentHandler{content: content}
	public.GET("/content", handler.Get)
}

// Get godoc
// @Summary      Portfolio Content
// @Description  The content the page is rendered from.
// @Tags         content
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Portfolio}
// @Failure      503  {object}  response.Response
// @Router       /content [get]
func (h *ContentHandler) Get(c *gin.Context) {
	p, err := h.content.Current(c.Request.Context())
	if err != nil {
		c.Error(apperror.ServiceUnavailable("Content unavailable", err))
		return
	}
	response.Success(c, http.StatusOK, "OK", p)
}
