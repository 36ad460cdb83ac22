package program

import (
	"testing"

	programModels "peakform/models/program"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A pooled second connection would see a different :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&programModels.Program{},
		&programModels.Course{},
		&programModels.Video{},
		&programModels.Enrollment{},
		&programModels.CourseProgress{},
		&programModels.VideoProgress{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
