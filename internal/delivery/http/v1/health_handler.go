package v1

import (
	"net/http"

	"portfolio-site/internal/delivery/http/response"
	"portfolio-site/internal/usecase"

	"github.com/gin-gonic/gin"
)

// Health godoc
// @Summary      Health Check
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := healthUC.Check(c.Request.Context())
		msg := "System operational"
		if report["status"] != "ok" {
			msg = "System degraded"
		}
		response.Success(c, http.StatusOK, msg, report)
	}
}
