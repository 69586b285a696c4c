package models

import "gorm.io/gorm"

// ManualFood is a user-authored food entry, optionally tagged with a barcode.
// It is independent of the provider cache and owned by exactly one user.
type ManualFood struct {
	gorm.Model
	UserID   uint    `gorm:"index;not null" json:"user_id"`
	Name     string  `gorm:"not null" json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Category string  `json:"category,omitempty"`
	Barcode  string  `gorm:"index" json:"barcode,omitempty"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

// Food converts a manual entry to canonical form.
func (m ManualFood) Food() Food {
	return Food{
		ID:       formatUintID(m.ID),
		Name:     m.Name,
		Brand:    m.Brand,
		Calories: m.Calories,
		Carbs:    m.Carbs,
		Protein:  m.Protein,
		Fat:      m.Fat,
		Source:   SourceManual,
		Barcode:  m.Barcode,
	}
}
