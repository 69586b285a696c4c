package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type ImageController struct {
	recognition *services.ImageRecognitionService
	uploader    *utils.S3Uploader
}

func NewImageController(recognition *services.ImageRecognitionService, uploader *utils.S3Uploader) *ImageController {
	return &ImageController{recognition: recognition, uploader: uploader}
}

type AnalyzeImageInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /api/image/analyze
func (ctl *ImageController) Analyze(c *gin.Context) {
	var input AnalyzeImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 required"})
		return
	}

	analysis, err := ctl.recognition.Analyze(c.Request.Context(), input.ImageBase64)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, analysis)
}

// POST /api/image/upload
func (ctl *ImageController) Upload(c *gin.Context) {
	var input AnalyzeImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 required"})
		return
	}

	if ctl.uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	url, err := ctl.uploader.UploadBase64Image(c.Request.Context(), input.ImageBase64, "scans")
	if err != nil {
		utils.Fail(c, utils.BadRequest("image upload failed"))
		return
	}
	utils.OK(c, gin.H{"url": url})
}
