package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/middlewares"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// GET /api/user/profile
func (ctl *UserController) Profile(c *gin.Context) {
	user, err := ctl.users.Profile(middlewares.UserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"user": user})
}

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// PATCH /api/user/profile
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.UpdateProfile(middlewares.UserID(c), input.Name, input.Email)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "profile updated", gin.H{"user": user})
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// PATCH /api/user/password
func (ctl *UserController) ChangePassword(c *gin.Context) {
	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current and new password required"})
		return
	}

	if err := ctl.users.ChangePassword(middlewares.UserID(c), input.CurrentPassword, input.NewPassword); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "password changed", nil)
}

// PATCH /api/user/preferences
func (ctl *UserController) UpdatePreferences(c *gin.Context) {
	var input services.PreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.users.UpdatePreferences(middlewares.UserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "preferences updated", gin.H{"user": user})
}

type DeleteAccountInput struct {
	Password string `json:"password"`
}

// DELETE /api/user/account
func (ctl *UserController) DeleteAccount(c *gin.Context) {
	var input DeleteAccountInput
	_ = c.ShouldBindJSON(&input)

	if err := ctl.users.DeleteAccount(middlewares.UserID(c), input.Password); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "account deleted", nil)
}
