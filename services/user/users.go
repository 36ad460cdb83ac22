package user

import (
	"log"
	"strings"
	"time"

	"peakform/models"

	"gorm.io/gorm"
)

// ListFilter narrows the admin user listing. Zero values mean no filtering;
// ActiveSince keeps only users seen at or after the given instant, Search
// matches name or email case-insensitively.
type ListFilter struct {
	Search      string
	Role        string
	ActiveSince *time.Time
	Page        int
	Limit       int
}

// ListUsers pages through non-deleted users, newest first, applying the
// role and last-seen filters. Returns the page plus the filtered total.
// Empty slice and zero total on query failure (logged).
func ListUsers(db *gorm.DB, filter ListFilter) ([]models.User, int64) {
	query := db.Model(&models.User{}).Where("is_deleted = ?", false)

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.ActiveSince != nil {
		query = query.Where("last_seen_at >= ?", *filter.ActiveSince)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return []models.User{}, 0
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var users []models.User
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Find(&users).Error; err != nil {
		log.Printf("Error listing users: %v", err)
		return []models.User{}, 0
	}

	return users, total
}
