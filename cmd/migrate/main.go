package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/latoulicious/GEMS/internal/config"
	"github.com/latoulicious/GEMS/pkg/database"
	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/store"
)

// Copies the CSV-backed tables into the shared PostgreSQL store so a
// multi-instance deployment can take over from a single-writer one.
func main() {
	dryRun := flag.Bool("dry-run", false, "Load and report without writing to the database")
	flag.Parse()

	// Load the environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL must be set to migrate into the shared store")
	}

	factory := logging.NewLoggerFactory(cfg.LogLevel)
	fileStore := store.NewFileStore(cfg.DataDir, factory)

	db, err := database.NewGormDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL database: %v", err)
	}
	defer sqlDB.Close()
	log.Println("Connected to database")

	sqlStore, err := database.NewSQLStore(db, factory)
	if err != nil {
		log.Fatalf("Failed to initialize shared store: %v", err)
	}

	for _, entity := range store.Entities() {
		table, err := fileStore.Load(entity)
		if err != nil {
			log.Fatalf("Failed to load %s table: %v", entity, err)
		}

		log.Printf("Loaded %s table: %d rows", entity, table.Len())
		if *dryRun {
			continue
		}

		if err := sqlStore.Save(entity, table); err != nil {
			log.Fatalf("Failed to migrate %s table: %v", entity, err)
		}
		log.Printf("Migrated %s table", entity)
	}

	if *dryRun {
		log.Println("Dry run complete, nothing written")
		os.Exit(0)
	}
	log.Println("Migration completed successfully")
}
