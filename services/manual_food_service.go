package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

// ManualFoodService manages user-authored food entries.
type ManualFoodService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewManualFoodService(db *gorm.DB, log *logger.Logger) *ManualFoodService {
	return &ManualFoodService{db: db, log: log.With("service", "ManualFoodService")}
}

type ManualFoodInput struct {
	Name     string   `json:"name"`
	Brand    string   `json:"brand"`
	Category string   `json:"category"`
	Barcode  string   `json:"barcode"`
	Calories *float64 `json:"calories"`
	Carbs    *float64 `json:"carbs"`
	Protein  *float64 `json:"protein"`
	Fat      *float64 `json:"fat"`
}

func (s *ManualFoodService) Create(userID uint, in ManualFoodInput) (*models.ManualFood, error) {
	if in.Name == "" || in.Calories == nil || in.Carbs == nil || in.Protein == nil || in.Fat == nil {
		return nil, utils.BadRequest("incomplete nutrition information")
	}
	if *in.Calories < 0 || *in.Carbs < 0 || *in.Protein < 0 || *in.Fat < 0 {
		return nil, utils.BadRequest("nutrition values must be non-negative")
	}

	food := models.ManualFood{
		UserID:   userID,
		Name:     in.Name,
		Brand:    in.Brand,
		Category: in.Category,
		Barcode:  in.Barcode,
		Calories: *in.Calories,
		Carbs:    *in.Carbs,
		Protein:  *in.Protein,
		Fat:      *in.Fat,
	}
	if err := s.db.Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *ManualFoodService) List(userID uint) ([]models.ManualFood, error) {
	var foods []models.ManualFood
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&foods).Error
	return foods, err
}

func (s *ManualFoodService) Update(userID, foodID uint, in ManualFoodInput) (*models.ManualFood, error) {
	var food models.ManualFood
	if err := s.db.
		Where("id = ? AND user_id = ?", foodID, userID).
		First(&food).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("food not found")
		}
		return nil, err
	}

	if in.Name != "" {
		food.Name = in.Name
	}
	if in.Brand != "" {
		food.Brand = in.Brand
	}
	if in.Category != "" {
		food.Category = in.Category
	}
	if in.Calories != nil {
		food.Calories = *in.Calories
	}
	if in.Carbs != nil {
		food.Carbs = *in.Carbs
	}
	if in.Protein != nil {
		food.Protein = *in.Protein
	}
	if in.Fat != nil {
		food.Fat = *in.Fat
	}

	if err := s.db.Save(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *ManualFoodService) Delete(userID, foodID uint) error {
	res := s.db.
		Where("id = ? AND user_id = ?", foodID, userID).
		Delete(&models.ManualFood{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFound("food not found")
	}
	return nil
}

// FindByBarcode returns the user's manual entry with an exact barcode match,
// or nil. Other users' entries are never visible here.
func (s *ManualFoodService) FindByBarcode(userID uint, barcode string) (*models.ManualFood, error) {
	var food models.ManualFood
	err := s.db.
		Where("user_id = ? AND barcode = ?", userID, barcode).
		First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}
