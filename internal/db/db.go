package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"asset-registry-backend/config"
	"asset-registry-backend/internal/model"
)

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	log.Println("Running database migrations...")
	if err := db.AutoMigrate(
		&model.Location{},
		&model.Staff{},
		&model.Asset{},
		&model.InventorySurvey{},
		&model.InventoryLine{},
		&model.PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.ApplyPostgresDDL {
		if err := applyPostgresDDL(db); err != nil {
			log.Printf("Warning: failed to apply some Postgres DDL: %v. Continuing without it.", err)
		}
	}

	log.Println("Database initialization complete.")
	return db, nil
}

// applyPostgresDDL adds constraints and indexes AutoMigrate cannot express.
func applyPostgresDDL(db *gorm.DB) error {
	ddls := []string{
		// Closed condition enums are enforced in Go; the checks keep direct
		// SQL writes honest too.
		"ALTER TABLE assets ADD CONSTRAINT assets_condition_valid " +
			"CHECK (condition IN ('good', 'fair', 'poor'));",
		"ALTER TABLE assets ADD CONSTRAINT assets_availability_valid " +
			"CHECK (availability IN ('active', 'decommissioned'));",
		"ALTER TABLE inventory_lines ADD CONSTRAINT inventory_lines_condition_valid " +
			"CHECK (condition IN ('good', 'fair', 'poor'));",

		// The review screen only ever lists unreviewed surveys.
		"CREATE INDEX IF NOT EXISTS idx_inventory_surveys_pending " +
			"ON inventory_surveys (created_at DESC) WHERE NOT reviewed;",

		// One line per asset per survey.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_inventory_lines_survey_asset " +
			"ON inventory_lines (survey_id, asset_id);",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
