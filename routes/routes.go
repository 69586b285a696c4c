package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/controllers"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/middlewares"
)

// Controllers bundles everything the router wires up.
type Controllers struct {
	Health *controllers.HealthController
	Auth   *controllers.AuthController
	User   *controllers.UserController
	Food   *controllers.FoodController
	Scan   *controllers.ScanController
	Image  *controllers.ImageController
	Export *controllers.ExportController
}

// SetupRouter builds the single canonical route tree.
func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/health", ctl.Health.Check)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.Login)
		auth.POST("/verify-mfa", ctl.Auth.VerifyMFA)
	}

	// Lookup endpoints work anonymously; barcode resolution picks up the
	// user's manual foods when a token is present.
	food := api.Group("/food")
	{
		food.GET("/search", middlewares.OptionalAuth(), ctl.Food.Search)
		food.GET("/search/advanced", ctl.Food.SearchAdvanced)
		food.GET("/common", ctl.Food.CommonFoods)
		food.POST("/barcode", middlewares.OptionalAuth(), ctl.Food.ScanBarcode)

		manual := food.Group("/manual")
		manual.Use(middlewares.AuthMiddleware())
		{
			manual.POST("", ctl.Food.AddManual)
			manual.GET("/my-foods", ctl.Food.MyManualFoods)
			manual.PATCH("/:foodId", ctl.Food.UpdateManual)
			manual.DELETE("/:foodId", ctl.Food.DeleteManual)
		}

		food.GET("/:foodId", middlewares.OptionalAuth(), ctl.Food.Details)
	}

	image := api.Group("/image")
	image.Use(middlewares.AuthMiddleware())
	{
		image.POST("/analyze", ctl.Image.Analyze)
		image.POST("/upload", ctl.Image.Upload)
	}

	scan := api.Group("/scan")
	scan.Use(middlewares.AuthMiddleware())
	{
		scan.POST("", ctl.Scan.Create)
		scan.GET("", ctl.Scan.History)
		scan.GET("/stats/daily", ctl.Scan.DailyStats)
		scan.GET("/stats/weekly", ctl.Scan.WeeklyStats)
		scan.GET("/stats/monthly", ctl.Scan.MonthlyStats)
		scan.GET("/:scanId", ctl.Scan.Details)
		scan.PATCH("/:scanId", ctl.Scan.Update)
		scan.DELETE("/:scanId", ctl.Scan.Delete)
	}

	export := api.Group("/export")
	export.Use(middlewares.AuthMiddleware())
	{
		export.GET("/csv", ctl.Export.CSV)
		export.GET("/xlsx", ctl.Export.XLSX)
	}

	user := api.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", ctl.User.Profile)
		user.PATCH("/profile", ctl.User.UpdateProfile)
		user.PATCH("/password", ctl.User.ChangePassword)
		user.PATCH("/preferences", ctl.User.UpdatePreferences)
		user.DELETE("/account", ctl.User.DeleteAccount)
	}

	return r
}
