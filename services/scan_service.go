package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

// ScanService creates and serves scan records. A scan's food lines and
// totals are fixed at creation; only meal type and notes may change later.
type ScanService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScanService(db *gorm.DB, log *logger.Logger) *ScanService {
	return &ScanService{db: db, log: log.With("service", "ScanService")}
}

type ScanFoodInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Source   string  `json:"source"`
	SourceID string  `json:"source_id"`
}

type CreateScanInput struct {
	Foods     []ScanFoodInput `json:"foods"`
	MealType  string          `json:"meal_type"`
	Notes     string          `json:"notes"`
	ImageURL  string          `json:"image_url"`
	ScannedAt *time.Time      `json:"scanned_at"`
}

// Create validates the food list, scales each line's per-100g values by its
// quantity, and persists the scan with its lines atomically.
func (s *ScanService) Create(userID uint, in CreateScanInput) (*models.Scan, error) {
	if len(in.Foods) == 0 {
		return nil, utils.BadRequest("food list required")
	}

	scannedAt := time.Now()
	if in.ScannedAt != nil {
		scannedAt = *in.ScannedAt
	}

	scan := models.Scan{
		UserID:    userID,
		ImageURL:  in.ImageURL,
		MealType:  in.MealType,
		Notes:     in.Notes,
		ScannedAt: scannedAt,
	}

	for _, f := range in.Foods {
		quantity := f.Quantity
		if quantity == 0 {
			quantity = 100
		}
		if quantity < 0 {
			return nil, utils.BadRequest("quantity must be positive")
		}

		multiplier := quantity / 100
		scan.TotalCalories += f.Calories * multiplier
		scan.TotalCarbs += f.Carbs * multiplier
		scan.TotalProtein += f.Protein * multiplier
		scan.TotalFat += f.Fat * multiplier

		source := f.Source
		if source == "" {
			source = models.SourceCiqual
		}
		scan.Foods = append(scan.Foods, models.ScanFood{
			Name:     f.Name,
			Quantity: quantity,
			Calories: f.Calories,
			Carbs:    f.Carbs,
			Protein:  f.Protein,
			Fat:      f.Fat,
			Source:   source,
			SourceID: f.SourceID,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&scan).Error
	})
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// History lists a user's scans newest-first with optional date bounds.
func (s *ScanService) History(userID uint, page, limit int, startDate, endDate *time.Time) ([]models.Scan, *Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	q := s.db.Model(&models.Scan{}).Where("user_id = ?", userID)
	if startDate != nil {
		q = q.Where("scanned_at >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("scanned_at <= ?", *endDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var scans []models.Scan
	err := q.
		Preload("Foods").
		Order("scanned_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&scans).Error
	if err != nil {
		return nil, nil, err
	}

	return scans, &Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *ScanService) Get(userID, scanID uint) (*models.Scan, error) {
	var scan models.Scan
	err := s.db.
		Preload("Foods").
		Where("id = ? AND user_id = ?", scanID, userID).
		First(&scan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("scan not found")
	}
	if err != nil {
		return nil, err
	}
	return &scan, nil
}

// Update changes the two mutable fields. Totals and food lines never change
// after creation.
func (s *ScanService) Update(userID, scanID uint, mealType, notes *string) (*models.Scan, error) {
	scan, err := s.Get(userID, scanID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if mealType != nil {
		updates["meal_type"] = *mealType
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) > 0 {
		if err := s.db.Model(scan).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return scan, nil
}

func (s *ScanService) Delete(userID, scanID uint) error {
	scan, err := s.Get(userID, scanID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scan_id = ?", scan.ID).Delete(&models.ScanFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(scan).Error
	})
}
