package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Scan is an immutable record of a set of consumed foods with precomputed
// totals. Only MealType and Notes may change after creation; the food lines
// are materialized snapshots, so later edits to a provider record never
// change a past scan.
type Scan struct {
	gorm.Model
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	ImageURL      string     `json:"image_url,omitempty"`
	MealType      string     `json:"meal_type,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	TotalCalories float64    `json:"total_calories"`
	TotalCarbs    float64    `json:"total_carbs"`
	TotalProtein  float64    `json:"total_protein"`
	TotalFat      float64    `json:"total_fat"`
	ScannedAt     time.Time  `gorm:"index" json:"scanned_at"`
	Foods         []ScanFood `gorm:"constraint:OnDelete:CASCADE" json:"foods"`
}

// ScanFood is one food line of a scan. Macro values here are the per-100g
// values recorded at scan time; Quantity is the consumed amount in grams.
type ScanFood struct {
	gorm.Model
	ScanID   uint    `gorm:"index;not null" json:"scan_id"`
	Name     string  `gorm:"not null" json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Source   string  `json:"source,omitempty"`
	SourceID string  `json:"source_id,omitempty"`
}

func formatUintID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
