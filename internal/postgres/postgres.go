package postgres

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"skyline/internal/model"
)

// DB holds the global database connection
var DB *gorm.DB

// Init initializes the database connection and sets the global DB variable
func Init(url string) *gorm.DB {
	// Configure GORM logger with higher slow SQL threshold
	gormLogger := logger.New(
		log.New(log.Writer(), "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Millisecond * 500,
		},
	)

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger: gormLogger,
	})

	if err != nil {
		log.Fatalln(err)
	}

	// AutoMigrate models
	err = db.AutoMigrate(&model.UserPG{}, &model.ProjectPG{})
	if err != nil {
		log.Fatalln("Failed to migrate user/project models:", err)
	}

	// Set global DB variable
	DB = db

	return db
}

// GetDB returns the global database connection
func GetDB() *gorm.DB {
	return DB
}

// Close closes the underlying database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
