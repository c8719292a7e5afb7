package testhelpers

import (
	"fmt"
	"net/url"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/annapurna-ai/backend/internal/database"
)

// SetupSQLiteDB opens an in-memory SQLite database with the full schema.
// Fast path for service tests that don't depend on PostgreSQL features;
// recipe search falls back to recency ordering on this backend.
func SetupSQLiteDB(t *testing.T) *gorm.DB {
	// A named shared-cache database keeps all pooled connections on the
	// same in-memory store while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}
