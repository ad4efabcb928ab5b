package main

import (
	"academia_backend/internal/app"
	"academia_backend/internal/config"
	"academia_backend/pkg/configwatcher"
	"academia_backend/pkg/logger"
	"flag"
	"log"

	"go.uber.org/zap"
)

// @title Academia Backend API
// @version 1.0
// @description Training platform with video courses, lesson quizzes, gamification and employee checklists.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

// @BasePath /
func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)

	if cfg.MigrateOnly {
		log.Println("Migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config file reloaded",
			zap.String("server_mode", newCfg.Server.Mode),
			zap.String("storage_type", newCfg.Storage.Type))
		application.Config.CORS = newCfg.CORS
		application.Config.RateLimit = newCfg.RateLimit
	})

	application.Run()
}
