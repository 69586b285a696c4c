package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
)

func seedScan(t *testing.T, db *gorm.DB, userID uint, at time.Time, calories, carbs float64) {
	t.Helper()
	scan := models.Scan{
		UserID:        userID,
		ScannedAt:     at,
		TotalCalories: calories,
		TotalCarbs:    carbs,
		TotalProtein:  1,
		TotalFat:      1,
	}
	if err := db.Create(&scan).Error; err != nil {
		t.Fatalf("seed scan: %v", err)
	}
}

func TestDailyStatsWindowBoundaries(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, testLogger())
	user := createTestUser(t, db, "stats@example.com")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	seedScan(t, db, user.ID, day, 100, 10)                                                 // midnight, included
	seedScan(t, db, user.ID, day.Add(23*time.Hour+59*time.Minute+59*time.Second), 200, 20) // last second, included
	seedScan(t, db, user.ID, day.AddDate(0, 0, 1), 500, 50)                                // next day, excluded
	seedScan(t, db, user.ID, day.AddDate(0, 0, -1), 500, 50)                               // previous day, excluded

	stats, err := svc.Daily(user.ID, day.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if stats.Date != "2026-03-10" {
		t.Fatalf("unexpected date label %q", stats.Date)
	}
	if stats.TotalScans != 2 {
		t.Fatalf("expected 2 scans in window, got %d", stats.TotalScans)
	}
	if stats.TotalCalories != 300 || stats.TotalCarbs != 30 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
}

func TestDailyStatsIgnoresOtherUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, testLogger())
	user := createTestUser(t, db, "stats@example.com")
	other := createTestUser(t, db, "other@example.com")

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	seedScan(t, db, user.ID, day, 100, 10)
	seedScan(t, db, other.ID, day, 900, 90)

	stats, err := svc.Daily(user.ID, day)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if stats.TotalCalories != 100 {
		t.Fatalf("expected only own scans, got %v calories", stats.TotalCalories)
	}
}

func TestWeeklyStatsSnapsToSunday(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, testLogger())
	user := createTestUser(t, db, "stats@example.com")

	// 2026-03-11 is a Wednesday; its week starts Sunday 2026-03-08.
	wednesday := time.Date(2026, 3, 11, 10, 0, 0, 0, time.Local)
	sunday := time.Date(2026, 3, 8, 8, 0, 0, 0, time.Local)
	saturday := time.Date(2026, 3, 14, 22, 0, 0, 0, time.Local)
	nextSunday := time.Date(2026, 3, 15, 1, 0, 0, 0, time.Local)

	seedScan(t, db, user.ID, sunday, 100, 10)
	seedScan(t, db, user.ID, wednesday, 200, 20)
	seedScan(t, db, user.ID, saturday, 300, 30)
	seedScan(t, db, user.ID, nextSunday, 999, 99)

	days, err := svc.Weekly(user.ID, wednesday)
	if err != nil {
		t.Fatalf("weekly: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(days))
	}
	if days[0].Date != "2026-03-08" || days[6].Date != "2026-03-14" {
		t.Fatalf("window not snapped to Sunday: %s .. %s", days[0].Date, days[6].Date)
	}
	if days[0].Calories != 100 || days[3].Calories != 200 || days[6].Calories != 300 {
		t.Fatalf("scans bucketed wrong: %+v", days)
	}
	var total float64
	for _, d := range days {
		total += d.Calories
	}
	if total != 600 {
		t.Fatalf("expected next week's scan excluded, got total %v", total)
	}
}

func TestMonthlyStatsAverages(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, testLogger())
	user := createTestUser(t, db, "stats@example.com")

	seedScan(t, db, user.ID, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local), 100, 10)
	seedScan(t, db, user.ID, time.Date(2026, 3, 31, 21, 0, 0, 0, time.Local), 300, 50)
	seedScan(t, db, user.ID, time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local), 999, 99)

	stats, err := svc.Monthly(user.ID, 2026, time.March)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if stats.Month != "March 2026" {
		t.Fatalf("unexpected month label %q", stats.Month)
	}
	if stats.TotalScans != 2 {
		t.Fatalf("expected 2 scans in March, got %d", stats.TotalScans)
	}
	if stats.TotalCalories != 400 || stats.AverageCalories != 200 {
		t.Fatalf("unexpected calorie aggregation: %+v", stats)
	}
	if stats.TotalCarbs != 60 || stats.AverageCarbs != 30 {
		t.Fatalf("unexpected carb aggregation: %+v", stats)
	}
}

func TestMonthlyStatsEmptyMonthIsZero(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatsService(db, testLogger())
	user := createTestUser(t, db, "stats@example.com")

	stats, err := svc.Monthly(user.ID, 2026, time.January)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if stats.TotalScans != 0 {
		t.Fatalf("expected 0 scans, got %d", stats.TotalScans)
	}
	if stats.AverageCalories != 0 || stats.AverageCarbs != 0 {
		t.Fatalf("expected zero averages for empty month, got %+v", stats)
	}
}
