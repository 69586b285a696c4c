package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
)

// FoodCacheService persists resolved foods keyed by (source, external_id).
// Entries are upsert-only and never expire.
type FoodCacheService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFoodCacheService(db *gorm.DB, log *logger.Logger) *FoodCacheService {
	return &FoodCacheService{db: db, log: log.With("service", "FoodCacheService")}
}

// Upsert stores a food, overwriting nutrient values and refreshing cached_at
// when the (source, external_id) key already exists. Concurrent upserts for
// the same key race harmlessly; the unique index makes last-write-wins.
func (s *FoodCacheService) Upsert(food models.Food) error {
	entry := models.CachedFood{
		Source:     food.Source,
		ExternalID: food.ID,
		Name:       food.Name,
		Brand:      food.Brand,
		Calories:   food.Calories,
		Carbs:      food.Carbs,
		Protein:    food.Protein,
		Fat:        food.Fat,
		CachedAt:   time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "source"}, {Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "brand", "calories", "carbs", "protein", "fat", "cached_at", "updated_at",
		}),
	}).Create(&entry).Error
}

// FindByExternalID returns the cached entry for (source, id), or nil when
// the key is not cached.
func (s *FoodCacheService) FindByExternalID(source, id string) (*models.CachedFood, error) {
	var entry models.CachedFood
	err := s.db.
		Where("source = ? AND external_id = ?", source, id).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// SearchByName does a case-insensitive substring match on the cached name,
// truncated to limit. Order beyond truncation is unspecified.
func (s *FoodCacheService) SearchByName(query string, limit int) ([]models.CachedFood, error) {
	var entries []models.CachedFood
	err := s.db.
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
