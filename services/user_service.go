package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type UserService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserService(db *gorm.DB, log *logger.Logger) *UserService {
	return &UserService{db: db, log: log.With("service", "UserService")}
}

func (s *UserService) Profile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uint, name, email *string) (*models.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	if email != nil && *email != "" && *email != user.Email {
		var existing models.User
		err := s.db.Where("email = ? AND id <> ?", *email, userID).First(&existing).Error
		if err == nil {
			return nil, utils.Conflict("email already in use")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(userID uint, current, updated string) error {
	if current == "" || updated == "" {
		return utils.BadRequest("current and new password required")
	}
	if len(updated) < 6 {
		return utils.BadRequest("new password must be at least 6 characters")
	}

	user, err := s.Profile(userID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(current, user.Password) {
		return utils.Unauthorized("current password incorrect")
	}

	hash, err := utils.HashPassword(updated)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password", hash).Error
}

type PreferencesInput struct {
	Language  *string  `json:"language"`
	DarkMode  *bool    `json:"dark_mode"`
	DailyGoal *float64 `json:"daily_goal"`
}

func (s *UserService) UpdatePreferences(userID uint, in PreferencesInput) (*models.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	if in.Language != nil && *in.Language != "" {
		user.Language = *in.Language
	}
	if in.DarkMode != nil {
		user.DarkMode = *in.DarkMode
	}
	if in.DailyGoal != nil {
		user.DailyGoal = in.DailyGoal
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and everything they own: scans with their
// food lines, and manual foods. All-or-nothing.
func (s *UserService) DeleteAccount(userID uint, password string) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}
	if password == "" {
		return utils.BadRequest("password required to delete account")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return utils.Unauthorized("password incorrect")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		scanIDs := tx.Model(&models.Scan{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("scan_id IN (?)", scanIDs).Delete(&models.ScanFood{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Scan{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ManualFood{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
