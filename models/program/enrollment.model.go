package program

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment tracks a user's relationship to a program, including payment and aggregate progress.
// The (user_id, program_id) unique index keeps concurrent enroll attempts idempotent.
type Enrollment struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uint       `json:"user_id" gorm:"index:idx_enrollment_user_program,unique;not null"`
	ProgramID     uuid.UUID  `json:"program_id" gorm:"type:uuid;index:idx_enrollment_user_program,unique;not null"`
	Cost          float64    `json:"cost" gorm:"default:0"`
	PaymentStatus string     `json:"payment_status" gorm:"default:'free'"` // free, paid, pending
	Progress      float64    `json:"progress" gorm:"default:0"`            // Completion percentage across courses (0-100)
	CompletedAt   *time.Time `json:"completed_at"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time  `json:"enrolled_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Program Program `json:"program" gorm:"foreignKey:ProgramID"`
}

func (Enrollment) TableName() string {
	return "program_enrollments"
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
