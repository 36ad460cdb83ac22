package program

import (
	"errors"
	"log"
	"time"

	programModels "peakform/models/program"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotEnrolled signals that no progress row exists for the (course, user)
// pair; callers treat it as "not yet enrolled" rather than a server fault.
var ErrNotEnrolled = errors.New("user is not enrolled in this course")

// CourseView is one course in a user's program sequence with its derived lock state
type CourseView struct {
	CourseProgressID uuid.UUID `json:"course_progress_id"`
	CourseID         uuid.UUID `json:"course_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Position         int       `json:"position"`
	Progress         float64   `json:"progress_percentage"`
	IsCompleted      bool      `json:"is_completed"`
	Locked           bool      `json:"locked"`
}

// LoadCoursesWithLockState returns the user's course sequence for one
// enrollment, ordered by position, with lock state derived at read time:
// position 0 is always unlocked; position i is unlocked iff the row at
// position i-1 has a progress percentage of exactly 100.
// Returns an empty slice when no rows exist or the query fails.
func LoadCoursesWithLockState(db *gorm.DB, userID uint, enrollmentID uuid.UUID) []CourseView {
	var rows []programModels.CourseProgress
	if err := db.Where("user_id = ? AND enrollment_id = ?", userID, enrollmentID).
		Preload("Course").
		Order("position asc").
		Find(&rows).Error; err != nil {
		log.Printf("Error loading course progress for enrollment %s: %v", enrollmentID, err)
		return []CourseView{}
	}

	views := make([]CourseView, len(rows))
	for i, row := range rows {
		locked := false
		if i > 0 {
			locked = rows[i-1].Progress != 100
		}
		views[i] = CourseView{
			CourseProgressID: row.ID,
			CourseID:         row.CourseID,
			Title:            row.Course.Title,
			Description:      row.Course.Description,
			Position:         row.Position,
			Progress:         row.Progress,
			IsCompleted:      row.IsCompleted,
			Locked:           locked,
		}
	}
	return views
}

// MarkCourseComplete sets the user's progress row for the course to completed
// (flag, 100%, timestamp) and cascades the change into the owning
// enrollment's aggregate progress. Returns the enrollment id so callers can
// navigate back to the program view, or ErrNotEnrolled when no row matches.
func MarkCourseComplete(db *gorm.DB, courseID uuid.UUID, userID uint) (uuid.UUID, error) {
	var row programModels.CourseProgress
	if err := db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNotEnrolled
		}
		log.Printf("Error looking up course progress for course %s: %v", courseID, err)
		return uuid.Nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&programModels.CourseProgress{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{
				"is_completed": true,
				"progress":     100,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}
		return recalcEnrollmentProgress(tx, row.EnrollmentID)
	})
	if err != nil {
		log.Printf("Error completing course %s for user %d: %v", courseID, userID, err)
		return uuid.Nil, err
	}

	return row.EnrollmentID, nil
}

// recalcEnrollmentProgress recomputes the enrollment-level percentage as
// completed courses / total courses. completed_at is stamped when all are
// done and cleared again if a course completion is later revoked
func recalcEnrollmentProgress(tx *gorm.DB, enrollmentID uuid.UUID) error {
	var total, completed int64
	if err := tx.Model(&programModels.CourseProgress{}).
		Where("enrollment_id = ?", enrollmentID).
		Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	if err := tx.Model(&programModels.CourseProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollmentID, true).
		Count(&completed).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"progress":     float64(completed) / float64(total) * 100,
		"completed_at": nil,
	}
	if completed == total {
		updates["completed_at"] = time.Now()
	}

	return tx.Model(&programModels.Enrollment{}).
		Where("id = ?", enrollmentID).
		Updates(updates).Error
}
