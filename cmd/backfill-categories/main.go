// Команда backfill-categories создает категории по умолчанию пользователям,
// зарегистрированным до их появления. Повторный запуск ничего не меняет.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yourusername/quiz-api/internal/config"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "путь к файлу конфигурации")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Database.LogLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap := service.NewBootstrapService(
		pgRepo.NewUserRepo(db),
		pgRepo.NewCategoryRepo(db),
		cfg.Bootstrap.DefaultCategories,
	)

	report, err := bootstrap.BackfillDefaultCategories(ctx)
	if err != nil {
		log.Fatalf("Backfill failed: %v", err)
	}
	log.Printf("Backfill завершен: пользователей=%d, обновлено=%d, создано категорий=%d",
		report.UsersScanned, report.UsersUpdated, report.CategoriesCreated)
}
