package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/config"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/controllers"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/logger"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/routes"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/services"
	"github.com/lipejemjpe-cell/scanmycarbs-backend/utils"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("database handle unavailable", "error", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()

	// AWS-backed collaborators are optional at startup: without credentials
	// the matching endpoints degrade, the rest of the API still serves.
	var uploader *utils.S3Uploader
	if cfg.S3Bucket != "" {
		uploader, err = utils.NewS3Uploader(ctx, cfg.S3Region, cfg.S3Bucket, cfg.CloudFrontURL)
		if err != nil {
			log.Warn("S3 uploader init failed", "error", err)
		}
	}

	var mailer services.MFASender
	if cfg.SESEmail != "" {
		m, err := utils.NewMailer(ctx, cfg.AWSRegion, cfg.SESEmail)
		if err != nil {
			log.Warn("SES mailer init failed", "error", err)
		} else {
			mailer = m
		}
	}

	var classifier services.VisionClassifier
	rek, err := services.NewRekognitionService(ctx, cfg.AWSRegion)
	if err != nil {
		log.Warn("Rekognition init failed, image analysis disabled", "error", err)
	} else {
		classifier = rek
	}

	cache := services.NewFoodCacheService(db, log)
	off := services.NewOpenFoodFactsService(log)
	ciqual := services.NewCiqualService(cache, log)
	manualFoods := services.NewManualFoodService(db, log)
	resolver := services.NewFoodResolver(ciqual, off, manualFoods, log)
	recognition := services.NewImageRecognitionService(classifier, resolver, log)
	scans := services.NewScanService(db, log)
	stats := services.NewStatsService(db, log)
	exports := services.NewExportService(db, log)
	auth := services.NewAuthService(db, mailer, log)
	users := services.NewUserService(db, log)

	router := routes.SetupRouter(routes.Controllers{
		Health: controllers.NewHealthController(off),
		Auth:   controllers.NewAuthController(auth),
		User:   controllers.NewUserController(users),
		Food:   controllers.NewFoodController(resolver, manualFoods, ciqual, off),
		Scan:   controllers.NewScanController(scans, stats),
		Image:  controllers.NewImageController(recognition, uploader),
		Export: controllers.NewExportController(exports),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
}
