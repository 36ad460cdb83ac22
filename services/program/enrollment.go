package program

import (
	"errors"
	"log"
	"time"

	programModels "peakform/models/program"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrProgramNotFound = errors.New("program not found or not active")

// EnrollUserInProgram creates the enrollment and seeds one course-progress
// row per active course (positions 0..N-1, matching the program's course
// order) inside a single transaction. Idempotent per (user, program): an
// existing enrollment is returned unchanged, and the unique index backstops
// two devices racing on first enroll.
func EnrollUserInProgram(db *gorm.DB, userID uint, programID uuid.UUID, cost float64, paymentStatus string) (uuid.UUID, error) {
	if paymentStatus == "" {
		paymentStatus = "free"
	}

	// Already enrolled
	var existing programModels.Enrollment
	if err := db.Where("user_id = ? AND program_id = ?", userID, programID).
		First(&existing).Error; err == nil {
		return existing.ID, nil
	}

	var enrollmentID uuid.UUID
	err := db.Transaction(func(tx *gorm.DB) error {
		var prog programModels.Program
		if err := tx.Where("id = ? AND is_active = ?", programID, true).First(&prog).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProgramNotFound
			}
			return err
		}

		var courses []programModels.Course
		if err := tx.Where("program_id = ? AND is_active = ?", programID, true).
			Order("order_index asc").Find(&courses).Error; err != nil {
			return err
		}

		enrollment := programModels.Enrollment{
			UserID:        userID,
			ProgramID:     programID,
			Cost:          cost,
			PaymentStatus: paymentStatus,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		for i, course := range courses {
			row := programModels.CourseProgress{
				UserID:       userID,
				CourseID:     course.ID,
				EnrollmentID: enrollment.ID,
				Position:     i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		enrollmentID = enrollment.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			return uuid.Nil, err
		}
		// A concurrent enroll may have won the unique-index race; reuse its row
		if lookupErr := db.Where("user_id = ? AND program_id = ?", userID, programID).
			First(&existing).Error; lookupErr == nil {
			return existing.ID, nil
		}
		log.Printf("Error enrolling user %d in program %s: %v", userID, programID, err)
		return uuid.Nil, err
	}

	return enrollmentID, nil
}

// GetUserEnrolledPrograms lists the user's enrollments with their program
// summaries. Returns an empty slice on query failure.
func GetUserEnrolledPrograms(db *gorm.DB, userID uint) []programModels.Enrollment {
	var enrollments []programModels.Enrollment
	if err := db.Where("user_id = ?", userID).
		Preload("Program").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		log.Printf("Error loading enrollments for user %d: %v", userID, err)
		return []programModels.Enrollment{}
	}
	return enrollments
}

// GetAvailablePrograms lists active programs the user has not enrolled in.
// A user with zero enrollments sees every active program: the NOT IN filter
// is only applied when the exclusion set is non-empty.
func GetAvailablePrograms(db *gorm.DB, userID uint) []programModels.Program {
	var enrolledIDs []uuid.UUID
	if err := db.Model(&programModels.Enrollment{}).
		Where("user_id = ?", userID).
		Pluck("program_id", &enrolledIDs).Error; err != nil {
		log.Printf("Error loading enrolled program ids for user %d: %v", userID, err)
		return []programModels.Program{}
	}

	query := db.Where("is_active = ?", true)
	if len(enrolledIDs) > 0 {
		query = query.Where("id NOT IN ?", enrolledIDs)
	}

	var programs []programModels.Program
	if err := query.Order("created_at desc").Find(&programs).Error; err != nil {
		log.Printf("Error loading available programs for user %d: %v", userID, err)
		return []programModels.Program{}
	}
	return programs
}

// UpdateVideoProgress records watch time for a video: resolves the video's
// owning course, finds or creates the user's course-progress row (linked to
// the user's enrollment for that program, not the user id), and upserts the
// video-progress row on (user, video). Whenever the completion flag changes,
// in either direction, the owning course's percentage is recomputed from
// completed vs total videos.
func UpdateVideoProgress(db *gorm.DB, userID uint, videoID uuid.UUID, watchTimeSeconds int, isCompleted bool) bool {
	var video programModels.Video
	if err := db.Where("id = ?", videoID).First(&video).Error; err != nil {
		log.Printf("Error resolving video %s: %v", videoID, err)
		return false
	}

	var course programModels.Course
	if err := db.Where("id = ?", video.CourseID).First(&course).Error; err != nil {
		log.Printf("Error resolving course for video %s: %v", videoID, err)
		return false
	}

	// Find or create the course progress row for this user
	var courseProgress programModels.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, course.ID).First(&courseProgress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var enrollment programModels.Enrollment
		if err := db.Where("user_id = ? AND program_id = ?", userID, course.ProgramID).
			First(&enrollment).Error; err != nil {
			log.Printf("No enrollment for user %d in program %s: %v", userID, course.ProgramID, err)
			return false
		}
		courseProgress = programModels.CourseProgress{
			UserID:       userID,
			CourseID:     course.ID,
			EnrollmentID: enrollment.ID,
			Position:     course.OrderIndex,
		}
		if err := db.Create(&courseProgress).Error; err != nil {
			log.Printf("Error creating course progress for user %d: %v", userID, err)
			return false
		}
	} else if err != nil {
		log.Printf("Error loading course progress for user %d: %v", userID, err)
		return false
	}

	// The prior completion state decides whether the course percentage moves
	priorCompleted := false
	var prior programModels.VideoProgress
	if err := db.Where("user_id = ? AND video_id = ?", userID, videoID).
		First(&prior).Error; err == nil {
		priorCompleted = prior.IsCompleted
	}

	var completedAt *time.Time
	if isCompleted {
		now := time.Now()
		completedAt = &now
	}

	row := programModels.VideoProgress{
		UserID:           userID,
		VideoID:          videoID,
		CourseProgressID: courseProgress.ID,
		WatchTimeSeconds: watchTimeSeconds,
		IsCompleted:      isCompleted,
		CompletedAt:      completedAt,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"watch_time_seconds", "is_completed", "completed_at", "updated_at",
		}),
	}).Create(&row).Error; err != nil {
		log.Printf("Error updating video progress for user %d: %v", userID, err)
		return false
	}

	if isCompleted != priorCompleted {
		if err := recalcCourseProgress(db, &courseProgress); err != nil {
			log.Printf("Error recalculating course progress %s: %v", courseProgress.ID, err)
			return false
		}
	}

	return true
}

// recalcCourseProgress derives the course percentage from completed vs total
// active videos, flips the completion flag at exactly 100, and cascades into
// the enrollment-level percentage.
func recalcCourseProgress(db *gorm.DB, row *programModels.CourseProgress) error {
	var total, completed int64
	if err := db.Model(&programModels.Video{}).
		Where("course_id = ? AND is_active = ?", row.CourseID, true).
		Count(&total).Error; err != nil {
		return err
	}
	if total == 0 {
		// Nothing to derive from; explicit completion is the only path
		return nil
	}
	if err := db.Model(&programModels.VideoProgress{}).
		Where("course_progress_id = ? AND is_completed = ?", row.ID, true).
		Count(&completed).Error; err != nil {
		return err
	}

	percentage := float64(completed) / float64(total) * 100

	return db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"progress":     percentage,
			"is_completed": percentage == 100,
			"completed_at": nil,
		}
		if percentage == 100 {
			updates["completed_at"] = time.Now()
		}
		if err := tx.Model(&programModels.CourseProgress{}).
			Where("id = ?", row.ID).
			Updates(updates).Error; err != nil {
			return err
		}
		return recalcEnrollmentProgress(tx, row.EnrollmentID)
	})
}
