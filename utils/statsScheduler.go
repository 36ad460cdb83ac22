package utils

import (
	"log"
	"sync/atomic"
	"time"

	"peakform/config"
	"peakform/database"
	"peakform/models"
	programModels "peakform/models/program"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

var (
	activeMemberCount int64
	activeCountPrimed int32
)

// InitializeStatsScheduler starts the background jobs: a 30-second refresh of
// the currently-active member count (the dashboard serves the cached value)
// and a daily digest email at 8 AM.
func InitializeStatsScheduler() {
	log.Println("[STATS-SCHEDULER] Initializing stats scheduler...")

	c := cron.New()

	c.AddFunc("@every 30s", RefreshActiveMemberCount)

	c.AddFunc("0 8 * * *", func() {
		log.Println("[STATS-SCHEDULER] Sending daily digest...")
		SendDailyDigest()
	})

	c.Start()
	RefreshActiveMemberCount()

	log.Println("[STATS-SCHEDULER] Stats scheduler started")
}

// RefreshActiveMemberCount recounts members seen within the active window
func RefreshActiveMemberCount() {
	windowStart := time.Now().Add(-time.Duration(config.AppConfig.ActiveWindowMinutes) * time.Minute)

	var count int64
	if err := database.Database.Db.Model(&models.User{}).
		Where("is_deleted = ? AND last_seen_at >= ?", false, windowStart).
		Count(&count).Error; err != nil {
		log.Printf("[STATS-SCHEDULER] Error counting active members: %v", err)
		return
	}

	atomic.StoreInt64(&activeMemberCount, count)
	atomic.StoreInt32(&activeCountPrimed, 1)
}

// ActiveMemberCount returns the cached active-member count; ok is false until
// the first refresh has completed
func ActiveMemberCount() (int64, bool) {
	if atomic.LoadInt32(&activeCountPrimed) == 0 {
		return 0, false
	}
	return atomic.LoadInt64(&activeMemberCount), true
}

// SendDailyDigest emails yesterday's signup and completion counts to the admin
func SendDailyDigest() {
	db := database.Database.Db

	yesterdayStart := now.BeginningOfDay().AddDate(0, 0, -1)
	todayStart := now.BeginningOfDay()

	var newSignups int64
	if err := db.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", yesterdayStart, todayStart).
		Count(&newSignups).Error; err != nil {
		log.Printf("[STATS-SCHEDULER] Error counting signups: %v", err)
		return
	}

	var completions int64
	if err := db.Model(&programModels.Enrollment{}).
		Where("completed_at >= ? AND completed_at < ?", yesterdayStart, todayStart).
		Count(&completions).Error; err != nil {
		log.Printf("[STATS-SCHEDULER] Error counting completions: %v", err)
		return
	}

	if err := SendDailyDigestEmail(config.AppConfig.AdminEmail, newSignups, completions); err != nil {
		log.Printf("[STATS-SCHEDULER] Error sending digest: %v", err)
	}
}
