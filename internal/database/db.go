package database

import (
	"fmt"
	"log"

	"transport-console/internal/config"
	"transport-console/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to driver ("postgres" or "sqlite") without migrating.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// cascades on shipment lines
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

// MemoryDSN names a private in-memory sqlite database.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TransportType{},
		&models.VehicleType{},
		&models.MaterialCategory{},
		&models.Material{},
		&models.Shipment{},
		&models.ShipmentLocation{},
		&models.ShipmentMaterial{},
		&models.AuditLog{},
	)
}

func Init(cfg *config.Config) {
	var err error

	DB, err = Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("[FATAL] could not connect to the database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("[FATAL] AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established. Migration complete.")
}
