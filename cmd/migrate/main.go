// ==============================================================================
// DATABASE MIGRATION - cmd/migrate/main.go
// ==============================================================================
package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// stores maps a store name to its connection env var and migration dir.
var stores = map[string]struct {
	envVar string
	dir    string
}{
	"backend": {"BACKEND_DATABASE_URL", "file://migrations/backend"},
	"public":  {"PUBLIC_DATABASE_URL", "file://migrations/public"},
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 3 {
		log.Fatal("Usage: migrate [backend|public] [up|down|version|force VERSION]")
	}

	store, ok := stores[os.Args[1]]
	if !ok {
		log.Fatalf("Unknown store: %s (want backend or public)", os.Args[1])
	}
	command := os.Args[2]

	databaseURL := os.Getenv(store.envVar)
	if databaseURL == "" {
		log.Fatalf("%s environment variable is required", store.envVar)
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(store.dir, "postgres", driver)
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("✅ Migrations applied successfully")

	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("Migration rollback failed: %v", err)
		}
		log.Println("✅ Migrations rolled back successfully")

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Failed to get version: %v", err)
		}
		fmt.Printf("Current version: %d (dirty: %t)\n", version, dirty)

	case "force":
		if len(os.Args) < 4 {
			log.Fatal("Usage: migrate [backend|public] force VERSION")
		}
		var version int
		fmt.Sscanf(os.Args[3], "%d", &version)
		if err := m.Force(version); err != nil {
			log.Fatalf("Force migration failed: %v", err)
		}
		log.Printf("✅ Forced version to %d\n", version)

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}
