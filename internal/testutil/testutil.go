// Package testutil provides shared helpers for package tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shamiri-institute/supervisor-core/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// DB opens an isolated in-memory SQLite database with the full schema
// migrated. Each call gets its own database so tests stay independent.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.SupervisorModel{},
		&models.FellowModel{},
		&models.GroupModel{},
		&models.SessionModel{},
		&models.TranscriptModel{},
		&models.AnalysisModel{},
		&models.ReviewModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
