package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"flashsale/shared/infra/migration"

	"github.com/joho/godotenv"
)

func main() {
	var (
		command     = flag.String("command", "up", "Migration command: up, down, steps, force, version")
		steps       = flag.Int("steps", 1, "Number of steps for 'steps' command")
		version     = flag.Int("version", 0, "Version for 'force' command")
		databaseURL = flag.String("db", "", "Database URL (defaults to DATABASE_URL env var)")
	)
	flag.Parse()

	_ = godotenv.Load()

	dbURL := *databaseURL
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("database URL required: pass -db or set DATABASE_URL")
	}

	if err := run(*command, *steps, *version, dbURL); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
}

func run(command string, steps, version int, databaseURL string) error {
	mgr, err := migration.NewMigrationManager(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migration manager: %w", err)
	}
	defer mgr.Close()

	switch command {
	case "up":
		fmt.Println("Running migrations up...")
		if err := mgr.Up(); err != nil {
			return fmt.Errorf("failed to run migrations up: %w", err)
		}
		fmt.Println("migrations completed successfully")

	case "down":
		fmt.Println("Running migration down...")
		if err := mgr.Down(); err != nil {
			return fmt.Errorf("failed to run migration down: %w", err)
		}
		fmt.Println("migration rolled back successfully")

	case "steps":
		fmt.Printf("Running %d migration steps...\n", steps)
		if err := mgr.Steps(steps); err != nil {
			return fmt.Errorf("failed to run migration steps: %w", err)
		}
		fmt.Printf("completed %d migration steps successfully\n", steps)

	case "force":
		fmt.Printf("Forcing migration to version %d...\n", version)
		if err := mgr.Force(version); err != nil {
			return fmt.Errorf("failed to force migration: %w", err)
		}
		fmt.Printf("forced migration to version %d successfully\n", version)

	case "version":
		v, dirty, err := mgr.Version()
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}
		fmt.Printf("current migration version: %d", v)
		if dirty {
			fmt.Printf(" (dirty)")
		}
		fmt.Println()

	default:
		return fmt.Errorf("unknown command: %s. Available commands: up, down, steps, force, version", command)
	}

	return nil
}
