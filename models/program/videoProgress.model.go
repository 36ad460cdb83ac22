package program

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoProgress is a user's watch-time/completion record for one video,
// upserted on the (user_id, video_id) unique index.
type VideoProgress struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID           uint       `json:"user_id" gorm:"index:idx_video_progress_user_video,unique;not null"`
	VideoID          uuid.UUID  `json:"video_id" gorm:"type:uuid;index:idx_video_progress_user_video,unique;not null"`
	CourseProgressID uuid.UUID  `json:"course_progress_id" gorm:"type:uuid;index;not null"`
	WatchTimeSeconds int        `json:"watch_time_seconds" gorm:"default:0"`
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (VideoProgress) TableName() string {
	return "user_video_progress"
}

func (p *VideoProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
