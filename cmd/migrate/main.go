package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/pkg/database"
)

const usage = `usage: migrate [-config path] [-source url] <command>

commands:
  up            применить все миграции
  down [n]      откатить n миграций (по умолчанию 1)
  force <ver>   сбросить dirty-состояние, установив версию
  version       показать текущую версию`

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "путь к файлу конфигурации")
	source := flag.String("source", "", "источник миграций (по умолчанию из конфигурации)")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sourceURL := *source
	if sourceURL == "" {
		sourceURL = cfg.Database.MigrationsURL
	}
	if sourceURL == "" {
		sourceURL = database.DefaultMigrationsURL
	}

	db, err := sql.Open("postgres", cfg.Database.PostgresURL())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := run(m, flag.Args()); err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "down":
		steps, err := intArg(args, 1)
		if err != nil {
			return err
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return err
		}
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force requires a version")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
		if err := m.Force(version); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	fmt.Printf("Current version: %d, dirty: %t\n", version, dirty)
	return nil
}

func intArg(args []string, def int) (int, error) {
	if len(args) < 2 {
		return def, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid step count %q", args[1])
	}
	return n, nil
}
