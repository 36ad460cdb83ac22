package program

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseProgress is a user's progress record for one course within one enrollment.
// Position mirrors the course order at enroll time and is the key the unlock rule reads.
type CourseProgress struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID       uint       `json:"user_id" gorm:"index:idx_course_progress_user_course,unique;not null"`
	CourseID     uuid.UUID  `json:"course_id" gorm:"type:uuid;index:idx_course_progress_user_course,unique;not null"`
	EnrollmentID uuid.UUID  `json:"enrollment_id" gorm:"type:uuid;index;not null"`
	Position     int        `json:"position" gorm:"default:0"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	Progress     float64    `json:"progress_percentage" gorm:"default:0"`
	CompletedAt  *time.Time `json:"completed_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}

func (CourseProgress) TableName() string {
	return "user_course_progress"
}

func (p *CourseProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
