package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/middlewares"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

type FoodController struct {
	resolver *services.FoodResolver
	manual   *services.ManualFoodService
	ciqual   *services.CiqualService
	off      *services.OpenFoodFactsService
}

func NewFoodController(resolver *services.FoodResolver, manual *services.ManualFoodService, ciqual *services.CiqualService, off *services.OpenFoodFactsService) *FoodController {
	return &FoodController{resolver: resolver, manual: manual, ciqual: ciqual, off: off}
}

// GET /api/food/search?query=&limit=
func (ctl *FoodController) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query required"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	results, err := ctl.resolver.Search(c.Request.Context(), query, limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"results": results, "total": len(results)})
}

// GET /api/food/search/advanced?query=&brands=&categories=&labels=
func (ctl *FoodController) SearchAdvanced(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query required"})
		return
	}

	results := ctl.off.SearchAdvanced(c.Request.Context(), query, services.SearchAdvancedOptions{
		Brands:     c.Query("brands"),
		Categories: c.Query("categories"),
		Labels:     c.Query("labels"),
	})
	utils.OK(c, gin.H{"results": results, "total": len(results)})
}

// GET /api/food/common
func (ctl *FoodController) CommonFoods(c *gin.Context) {
	utils.OK(c, gin.H{"foods": ctl.ciqual.CommonFoods()})
}

// GET /api/food/:foodId?source=
func (ctl *FoodController) Details(c *gin.Context) {
	source := c.DefaultQuery("source", "ciqual")

	food, err := ctl.resolver.GetDetails(c.Request.Context(), c.Param("foodId"), source)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"food": food})
}

type BarcodeInput struct {
	Barcode string `json:"barcode" binding:"required"`
}

// POST /api/food/barcode
func (ctl *FoodController) ScanBarcode(c *gin.Context) {
	var input BarcodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode required"})
		return
	}

	food, err := ctl.resolver.ResolveBarcode(c.Request.Context(), middlewares.UserID(c), input.Barcode)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"food": food})
}

// POST /api/food/manual
func (ctl *FoodController) AddManual(c *gin.Context) {
	var input services.ManualFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := ctl.manual.Create(middlewares.UserID(c), input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.Created(c, "food added", gin.H{"food": food})
}

// GET /api/food/manual/my-foods
func (ctl *FoodController) MyManualFoods(c *gin.Context) {
	foods, err := ctl.manual.List(middlewares.UserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"foods": foods})
}

// PATCH /api/food/manual/:foodId
func (ctl *FoodController) UpdateManual(c *gin.Context) {
	foodID, err := pathID(c, "foodId")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	var input services.ManualFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := ctl.manual.Update(middlewares.UserID(c), foodID, input)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "food updated", gin.H{"food": food})
}

// DELETE /api/food/manual/:foodId
func (ctl *FoodController) DeleteManual(c *gin.Context) {
	foodID, err := pathID(c, "foodId")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := ctl.manual.Delete(middlewares.UserID(c), foodID); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKWithMessage(c, "food deleted", nil)
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, utils.BadRequest("invalid " + name)
	}
	return uint(id), nil
}
