package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
)

// StatsService aggregates scan totals over day, week and month windows.
type StatsService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStatsService(db *gorm.DB, log *logger.Logger) *StatsService {
	return &StatsService{db: db, log: log.With("service", "StatsService")}
}

type DailyStats struct {
	Date          string  `json:"date"`
	TotalScans    int     `json:"totalScans"`
	TotalCalories float64 `json:"totalCalories"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalFat      float64 `json:"totalFat"`
}

// Daily sums a user's scans over the closed interval
// [00:00:00.000, 23:59:59.999] of the given local date.
func (s *StatsService) Daily(userID uint, date time.Time) (*DailyStats, error) {
	scans, err := s.scansBetween(userID, dayStart(date), dayEnd(date))
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{Date: date.Format("2006-01-02"), TotalScans: len(scans)}
	for _, sc := range scans {
		stats.TotalCalories += sc.TotalCalories
		stats.TotalCarbs += sc.TotalCarbs
		stats.TotalProtein += sc.TotalProtein
		stats.TotalFat += sc.TotalFat
	}
	return stats, nil
}

type WeeklyDayStats struct {
	Date     string  `json:"date"`
	Scans    int     `json:"scans"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

// Weekly buckets a Sunday-start 7-day window by day. The reference date is
// snapped back to the preceding (or same) Sunday.
func (s *StatsService) Weekly(userID uint, reference time.Time) ([]WeeklyDayStats, error) {
	start := dayStart(reference)
	start = start.AddDate(0, 0, -int(start.Weekday()))
	end := start.AddDate(0, 0, 7)

	var scans []models.Scan
	err := s.db.
		Where("user_id = ? AND scanned_at >= ? AND scanned_at < ?", userID, start, end).
		Order("scanned_at ASC").
		Find(&scans).Error
	if err != nil {
		return nil, err
	}

	days := make([]WeeklyDayStats, 7)
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	for _, sc := range scans {
		i := int(sc.ScannedAt.Sub(start).Hours() / 24)
		if i < 0 || i > 6 {
			continue
		}
		days[i].Scans++
		days[i].Calories += sc.TotalCalories
		days[i].Carbs += sc.TotalCarbs
		days[i].Protein += sc.TotalProtein
		days[i].Fat += sc.TotalFat
	}
	return days, nil
}

type MonthlyStats struct {
	Month           string  `json:"month"`
	TotalScans      int     `json:"totalScans"`
	AverageCalories float64 `json:"averageCalories"`
	AverageCarbs    float64 `json:"averageCarbs"`
	TotalCalories   float64 `json:"totalCalories"`
	TotalCarbs      float64 `json:"totalCarbs"`
	TotalProtein    float64 `json:"totalProtein"`
	TotalFat        float64 `json:"totalFat"`
}

// Monthly sums a calendar month and reports the per-scan mean. Zero scans is
// a valid result with zero means, not an error.
func (s *StatsService) Monthly(userID uint, year int, month time.Month) (*MonthlyStats, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := dayEnd(start.AddDate(0, 1, -1))

	scans, err := s.scansBetween(userID, start, end)
	if err != nil {
		return nil, err
	}

	stats := &MonthlyStats{
		Month:      start.Format("January 2006"),
		TotalScans: len(scans),
	}
	for _, sc := range scans {
		stats.TotalCalories += sc.TotalCalories
		stats.TotalCarbs += sc.TotalCarbs
		stats.TotalProtein += sc.TotalProtein
		stats.TotalFat += sc.TotalFat
	}
	if len(scans) > 0 {
		stats.AverageCalories = stats.TotalCalories / float64(len(scans))
		stats.AverageCarbs = stats.TotalCarbs / float64(len(scans))
	}
	return stats, nil
}

func (s *StatsService) scansBetween(userID uint, from, to time.Time) ([]models.Scan, error) {
	var scans []models.Scan
	err := s.db.
		Where("user_id = ? AND scanned_at BETWEEN ? AND ?", userID, from, to).
		Find(&scans).Error
	return scans, err
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
