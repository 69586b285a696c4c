package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `json:"name"`
	Language    string     `gorm:"default:fr" json:"language"`
	DarkMode    bool       `json:"dark_mode"`
	DailyGoal   *float64   `json:"daily_goal,omitempty"`
	MFAEnabled  bool       `json:"mfa_enabled"`
	MFACode     string     `json:"-"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Scans       []Scan       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ManualFoods []ManualFood `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
