package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

// MFASender delivers one-time login codes. Nil-able in deployments without
// SES credentials; MFA-enabled logins then fail loudly instead of silently.
type MFASender interface {
	SendMFAEmail(ctx context.Context, to, code string) error
}

type AuthService struct {
	db     *gorm.DB
	mailer MFASender
	log    *logger.Logger
}

func NewAuthService(db *gorm.DB, mailer MFASender, log *logger.Logger) *AuthService {
	return &AuthService{db: db, mailer: mailer, log: log.With("service", "AuthService")}
}

func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, utils.BadRequest("email and password required")
	}
	if len(password) < 6 {
		return nil, utils.BadRequest("password must be at least 6 characters")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, utils.Conflict("email already in use")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{Email: email, Password: hash, Name: name}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type LoginResult struct {
	Token       string       `json:"token,omitempty"`
	MFARequired bool         `json:"mfa_required,omitempty"`
	User        *models.User `json:"user,omitempty"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, utils.Unauthorized("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, utils.Unauthorized("invalid email or password")
	}

	if user.MFAEnabled {
		if s.mailer == nil {
			s.log.Error("MFA login without a configured mailer", "email", email)
			return nil, fmt.Errorf("mfa mailer not configured")
		}
		code := fmt.Sprintf("%06d", rand.Intn(1000000))
		user.MFACode = code
		if err := s.db.Save(&user).Error; err != nil {
			return nil, err
		}
		if err := s.mailer.SendMFAEmail(ctx, user.Email, code); err != nil {
			return nil, fmt.Errorf("failed to send MFA code: %w", err)
		}
		return &LoginResult{MFARequired: true}, nil
	}

	return s.issueToken(&user)
}

func (s *AuthService) VerifyMFA(email, code string) (*LoginResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, utils.Unauthorized("invalid code")
	}
	if user.MFACode == "" || user.MFACode != code {
		return nil, utils.Unauthorized("invalid code")
	}

	user.MFACode = ""
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return s.issueToken(&user)
}

func (s *AuthService) issueToken(user *models.User) (*LoginResult, error) {
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}
