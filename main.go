package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/mealbox-app/config"
	"github.com/yeremiapane/mealbox-app/database"
	"github.com/yeremiapane/mealbox-app/kds"
	"github.com/yeremiapane/mealbox-app/router"
	"github.com/yeremiapane/mealbox-app/services"
	"github.com/yeremiapane/mealbox-app/utils"
	"gorm.io/gorm"
)

func main() {
	importFile := flag.String("import", "", "import a legacy order CSV and exit")
	flag.Parse()

	cfg := config.Load()
	utils.InitLoggerWithLevel(cfg.LogLevel)
	utils.SetJWTSecret(cfg.JWTSecret)

	db, err := openDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	repo := database.NewStore(db)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.SeedAdmin(ctx, repo, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		utils.ErrorLogger.Fatalf("Failed to seed admin user: %v", err)
	}

	if *importFile != "" {
		if err := runImport(ctx, repo, *importFile); err != nil {
			utils.ErrorLogger.Fatalf("Import failed: %v", err)
		}
		return
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := kds.NewHub()
	r := router.SetupRouter(repo, hub, router.Options{
		CORSOrigin:   cfg.CORSOrigin,
		RateLimitRPS: cfg.RateLimitRPS,
	})
	r.SetTrustedProxies([]string{"127.0.0.1"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

// openDB treats DB_DSN=":memory:" as a throwaway SQLite database.
func openDB(cfg config.Config) (*gorm.DB, error) {
	if cfg.DBDriver == "sqlite" && cfg.DBDSN == ":memory:" {
		utils.InfoLogger.Warn("Using in-memory database, data is lost on exit")
		return database.OpenMemory()
	}
	return config.InitDB(cfg)
}

func runImport(ctx context.Context, repo database.Repository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := services.NewReconciler(repo).ImportCSV(ctx, path, f)
	if err != nil {
		return err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"run":      result.RunTag,
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}).Info("Import complete")
	return nil
}
