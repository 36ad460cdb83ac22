package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"peakform/database"
	"peakform/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLastSeenApp(t *testing.T, userID uint) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	u := models.User{Name: "member", Email: "member@test.local", Password: "x"}
	u.ID = userID
	require.NoError(t, db.Create(&u).Error)

	database.Database = database.DbInstance{Db: db}

	lastSeenMu.Lock()
	lastSeenTouch = make(map[uint]time.Time)
	lastSeenMu.Unlock()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		return c.Next()
	})
	app.Use(TouchLastSeen)
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func lastSeenFromDB(t *testing.T, userID uint) *time.Time {
	t.Helper()

	var u models.User
	require.NoError(t, database.Database.Db.Where("id = ?", userID).First(&u).Error)
	return u.LastSeenAt
}

func TestTouchLastSeenStampsAndThrottles(t *testing.T) {
	app := setupLastSeenApp(t, 1)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, lastSeenFromDB(t, 1))

	// Plant a sentinel: a throttled request must not overwrite it
	sentinel := time.Now().Add(-time.Hour)
	require.NoError(t, database.Database.Db.Model(&models.User{}).
		Where("id = ?", 1).Update("last_seen_at", sentinel).Error)

	_, err = app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	stamped := lastSeenFromDB(t, 1)
	require.NotNil(t, stamped)
	assert.WithinDuration(t, sentinel, *stamped, time.Second, "second request within the interval must skip the write")

	// Age the throttle entry past the interval: the next request writes again
	lastSeenMu.Lock()
	lastSeenTouch[1] = time.Now().Add(-2 * lastSeenInterval)
	lastSeenMu.Unlock()

	_, err = app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	stamped = lastSeenFromDB(t, 1)
	require.NotNil(t, stamped)
	assert.WithinDuration(t, time.Now(), *stamped, time.Minute)
}

func TestTouchLastSeenEvictsStaleEntries(t *testing.T) {
	app := setupLastSeenApp(t, 1)

	// Fill the map past its limit with entries old enough to be evicted
	stale := time.Now().Add(-2 * lastSeenInterval)
	lastSeenMu.Lock()
	for id := uint(1000); id < uint(1000+lastSeenMapLimit+50); id++ {
		lastSeenTouch[id] = stale
	}
	lastSeenMu.Unlock()

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	lastSeenMu.Lock()
	size := len(lastSeenTouch)
	_, kept := lastSeenTouch[1]
	lastSeenMu.Unlock()

	assert.True(t, kept, "the touching user's entry survives the sweep")
	assert.Less(t, size, lastSeenMapLimit, "stale entries are evicted once the map exceeds its limit")
}
