package middleware

import (
	"log"
	"sync"
	"time"

	"peakform/database"
	"peakform/models"

	"github.com/gofiber/fiber/v2"
)

var (
	lastSeenMu    sync.Mutex
	lastSeenTouch = make(map[uint]time.Time)
)

const (
	lastSeenInterval = 30 * time.Second
	lastSeenMapLimit = 4096
)

// TouchLastSeen stamps the authenticated user's last_seen_at so the admin
// dashboard can count members active within the configured window. Writes
// are throttled to one per user per 30 seconds.
// Runs after JWTMiddleware; requests without a resolved user pass through.
func TouchLastSeen(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return c.Next()
	}

	now := time.Now()

	lastSeenMu.Lock()
	last, seen := lastSeenTouch[userID]
	if seen && now.Sub(last) < lastSeenInterval {
		lastSeenMu.Unlock()
		return c.Next()
	}
	lastSeenTouch[userID] = now
	// Expired entries permit a write anyway, so evicting them loses nothing
	if len(lastSeenTouch) > lastSeenMapLimit {
		for id, ts := range lastSeenTouch {
			if now.Sub(ts) >= lastSeenInterval {
				delete(lastSeenTouch, id)
			}
		}
	}
	lastSeenMu.Unlock()

	if err := database.Database.Db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", now).Error; err != nil {
		log.Printf("Error updating last_seen_at for user %d: %v", userID, err)
	}

	return c.Next()
}
