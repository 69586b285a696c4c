package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

// POST /api/auth/register
func (ctl *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ctl.auth.Register(input.Email, input.Password, input.Name)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Created(c, "registration successful", gin.H{"user": user})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctl.auth.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	if result.MFARequired {
		utils.OKWithMessage(c, "MFA code sent to email", gin.H{"mfa_required": true})
		return
	}
	utils.OK(c, result)
}

type VerifyMFAInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// POST /api/auth/verify-mfa
func (ctl *AuthController) VerifyMFA(c *gin.Context) {
	var input VerifyMFAInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ctl.auth.VerifyMFA(input.Email, input.Code)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, result)
}
