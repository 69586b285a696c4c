package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/middlewares"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type ExportController struct {
	exports *services.ExportService
}

func NewExportController(exports *services.ExportService) *ExportController {
	return &ExportController{exports: exports}
}

// GET /api/export/csv?startDate=&endDate=
func (ctl *ExportController) CSV(c *gin.Context) {
	from := parseDateQuery(c, "startDate")
	to := parseDateQuery(c, "endDate")

	data, err := ctl.exports.CSV(middlewares.UserID(c), from, to)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	filename := fmt.Sprintf("scans-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

// GET /api/export/xlsx?startDate=&endDate=
func (ctl *ExportController) XLSX(c *gin.Context) {
	from := parseDateQuery(c, "startDate")
	to := parseDateQuery(c, "endDate")

	data, err := ctl.exports.XLSX(middlewares.UserID(c), from, to)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	filename := fmt.Sprintf("scans-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
