package config

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"senior_dispatch/internal/logger"
	"senior_dispatch/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB opens the Postgres connection described by the environment and
// migrates every model. It exits the process on failure. Call LoadEnv first.
func InitDB() {
	// 1) Build Data Source Name
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "password"),
		getEnv("DB_NAME", "dispatch"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
		getEnv("DB_TIMEZONE", "Asia/Seoul"),
	)

	// 2) Open and migrate
	db, err := Connect(postgres.Open(dsn))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Assign to global
	DB = db
}

// Connect opens a gorm handle on dialector and migrates the schema. Tests pass
// an in-memory SQLite dialector.
func Connect(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(logger.GormLogger(), gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: open database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Driver{},
		&models.Vehicle{},
		&models.Route{},
		&models.RouteDriver{},
		&models.Senior{},
		&models.LeaveRequest{},
		&models.SeniorAbsence{},
		&models.Holiday{},
	)
	if err != nil {
		return nil, fmt.Errorf("connect: auto-migration: %w", err)
	}

	return db, nil
}
