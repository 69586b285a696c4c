package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
)

type HealthController struct {
	off *services.OpenFoodFactsService
}

func NewHealthController(off *services.OpenFoodFactsService) *HealthController {
	return &HealthController{off: off}
}

// GET /health
func (ctl *HealthController) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"providers": gin.H{
			"openfoodfacts": ctl.off.HealthCheck(c.Request.Context()),
		},
	})
}
