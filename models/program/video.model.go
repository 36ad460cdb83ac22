package program

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Video is a single exercise/lesson media item within a course.
// Duration is stored canonically in seconds; the "m:ss" form is presentation only.
type Video struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CourseID        uuid.UUID `json:"course_id" gorm:"type:uuid;index;not null"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	VideoURL        string    `json:"video_url"`
	ThumbnailURL    string    `json:"thumbnail_url"`
	DurationSeconds int       `json:"duration_seconds" gorm:"default:0"`
	OrderIndex      int       `json:"order_index" gorm:"default:0"` // Video order in course, dense from 0
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
