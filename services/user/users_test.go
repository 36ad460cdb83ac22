package user

import (
	"testing"
	"time"

	"peakform/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, role string, lastSeen *time.Time, createdAt time.Time) models.User {
	t.Helper()

	u := models.User{
		Name:       name,
		Email:      name + "@test.local",
		Role:       role,
		Password:   "x",
		LastSeenAt: lastSeen,
	}
	u.CreatedAt = createdAt
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestListUsersNewestFirstExcludingDeleted(t *testing.T) {
	db := setupTestDB(t)
	base := time.Now()

	seedUser(t, db, "older", "USER", nil, base.Add(-2*time.Hour))
	seedUser(t, db, "newer", "USER", nil, base.Add(-time.Hour))
	gone := seedUser(t, db, "gone", "USER", nil, base)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", gone.ID).
		Update("is_deleted", true).Error)

	users, total := ListUsers(db, ListFilter{})
	require.Len(t, users, 2)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "newer", users[0].Name)
	assert.Equal(t, "older", users[1].Name)
}

func TestListUsersFiltersByRole(t *testing.T) {
	db := setupTestDB(t)
	base := time.Now()

	seedUser(t, db, "member", "USER", nil, base)
	seedUser(t, db, "coach", "ADMIN", nil, base)

	users, total := ListUsers(db, ListFilter{Role: "ADMIN"})
	require.Len(t, users, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "coach", users[0].Name)
}

func TestListUsersSearchesNameAndEmail(t *testing.T) {
	db := setupTestDB(t)
	base := time.Now()

	seedUser(t, db, "Alice Strong", "USER", nil, base)
	seedUser(t, db, "Bob Steady", "USER", nil, base)

	users, total := ListUsers(db, ListFilter{Search: "alice"})
	require.Len(t, users, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Alice Strong", users[0].Name)

	// Email matches too, case-insensitively
	users, total = ListUsers(db, ListFilter{Search: "STEADY@TEST"})
	require.Len(t, users, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Bob Steady", users[0].Name)
}

func TestListUsersFiltersByLastSeen(t *testing.T) {
	db := setupTestDB(t)
	base := time.Now()

	recent := base.Add(-30 * time.Second)
	stale := base.Add(-2 * time.Hour)
	seedUser(t, db, "active", "USER", &recent, base)
	seedUser(t, db, "idle", "USER", &stale, base)
	seedUser(t, db, "never", "USER", nil, base)

	cutoff := base.Add(-time.Minute)
	users, total := ListUsers(db, ListFilter{ActiveSince: &cutoff})
	require.Len(t, users, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "active", users[0].Name)
}

func TestListUsersPaginates(t *testing.T) {
	db := setupTestDB(t)
	base := time.Now()

	names := []string{"a", "b", "c", "d", "e"}
	for i, name := range names {
		seedUser(t, db, name, "USER", nil, base.Add(time.Duration(i)*time.Minute))
	}

	first, total := ListUsers(db, ListFilter{Page: 1, Limit: 2})
	require.Len(t, first, 2)
	assert.EqualValues(t, 5, total, "total reflects the filter, not the page")
	assert.Equal(t, "e", first[0].Name)

	third, _ := ListUsers(db, ListFilter{Page: 3, Limit: 2})
	require.Len(t, third, 1)
	assert.Equal(t, "a", third[0].Name)
}
