package program

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Program is a top-level enrollable training curriculum containing ordered courses
type Program struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Duration    string    `json:"duration"`   // display label, e.g. "8 weeks"
	Difficulty  string    `json:"difficulty"` // display label, e.g. "Beginner"
	Focus       string    `json:"focus"`      // display label, e.g. "Strength"
	Cost        string    `json:"cost"`       // display label, e.g. "Free" or "$49"
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Program) TableName() string {
	return "programs"
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
