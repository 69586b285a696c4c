package models

import (
	"time"

	"gorm.io/gorm"
)

// Food sources.
const (
	SourceCiqual        = "ciqual"
	SourceOpenFoodFacts = "openfoodfacts"
	SourceManual        = "manual"
)

// Food is a provider-independent nutrient record.
// All macro values are per 100 g unless explicitly scaled.
type Food struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Source   string  `json:"source,omitempty"`
	Barcode  string  `json:"barcode,omitempty"`
}

// CachedFood is a previously resolved food persisted locally, keyed by
// (source, external_id). Entries never expire; upserts refresh CachedAt.
type CachedFood struct {
	gorm.Model
	Source     string `gorm:"type:varchar(32);uniqueIndex:idx_cached_source_external;not null"`
	ExternalID string `gorm:"type:varchar(255);uniqueIndex:idx_cached_source_external;not null"`
	Name       string `gorm:"not null"`
	Brand      string
	Calories   float64
	Carbs      float64
	Protein    float64
	Fat        float64
	CachedAt   time.Time
}

// Food converts a cache row back to its canonical form.
func (c CachedFood) Food() Food {
	return Food{
		ID:       c.ExternalID,
		Name:     c.Name,
		Brand:    c.Brand,
		Calories: c.Calories,
		Carbs:    c.Carbs,
		Protein:  c.Protein,
		Fat:      c.Fat,
		Source:   c.Source,
	}
}
