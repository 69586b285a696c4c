package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/middlewares"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type ScanController struct {
	scans *services.ScanService
	stats *services.StatsService
}

func NewScanController(scans *services.ScanService, stats *services.StatsService) *ScanController {
	return &ScanController{scans: scans, stats: stats}
}

// POST /api/scan
func (ctl *ScanController) Create(c *gin.Context) {
	var input services.CreateScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scan, err := ctl.scans.Create(middlewares.UserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Created(c, "scan saved", gin.H{"scan": scan})
}

// GET /api/scan?page=&limit=&startDate=&endDate=
func (ctl *ScanController) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	startDate := parseDateQuery(c, "startDate")
	endDate := parseDateQuery(c, "endDate")

	scans, pagination, err := ctl.scans.History(middlewares.UserID(c), page, limit, startDate, endDate)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"scans": scans, "pagination": pagination})
}

// GET /api/scan/:scanId
func (ctl *ScanController) Details(c *gin.Context) {
	scanID, err := pathID(c, "scanId")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	scan, err := ctl.scans.Get(middlewares.UserID(c), scanID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"scan": scan})
}

type UpdateScanInput struct {
	MealType *string `json:"meal_type"`
	Notes    *string `json:"notes"`
}

// PATCH /api/scan/:scanId
func (ctl *ScanController) Update(c *gin.Context) {
	scanID, err := pathID(c, "scanId")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var input UpdateScanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scan, err := ctl.scans.Update(middlewares.UserID(c), scanID, input.MealType, input.Notes)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "scan updated", gin.H{"scan": scan})
}

// DELETE /api/scan/:scanId
func (ctl *ScanController) Delete(c *gin.Context) {
	scanID, err := pathID(c, "scanId")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := ctl.scans.Delete(middlewares.UserID(c), scanID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "scan deleted", nil)
}

// GET /api/scan/stats/daily?date=
func (ctl *ScanController) DailyStats(c *gin.Context) {
	date := time.Now()
	if d := parseDateQuery(c, "date"); d != nil {
		date = *d
	}

	stats, err := ctl.stats.Daily(middlewares.UserID(c), date)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"stats": stats})
}

// GET /api/scan/stats/weekly?startDate=
func (ctl *ScanController) WeeklyStats(c *gin.Context) {
	start := time.Now()
	if d := parseDateQuery(c, "startDate"); d != nil {
		start = *d
	}

	days, err := ctl.stats.Weekly(middlewares.UserID(c), start)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"dailyStats": days})
}

// GET /api/scan/stats/monthly?year=&month=
func (ctl *ScanController) MonthlyStats(c *gin.Context) {
	now := time.Now()
	year := now.Year()
	month := now.Month()
	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(c.Query("month")); err == nil && m >= 1 && m <= 12 {
		month = time.Month(m)
	}

	stats, err := ctl.stats.Monthly(middlewares.UserID(c), year, month)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"stats": stats})
}

func parseDateQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return &t
		}
	}
	return nil
}
