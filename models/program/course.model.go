package program

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is a themed unit within a program; courses unlock sequentially by order_index
type Course struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	ProgramID   uuid.UUID                   `json:"program_id" gorm:"type:uuid;index;not null"`
	Title       string                      `json:"title" gorm:"not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Disclaimer  string                      `json:"disclaimer" gorm:"type:text"`
	Notes       string                      `json:"notes" gorm:"type:text"`
	Options     datatypes.JSONSlice[string] `json:"options"`
	OrderIndex  int                         `json:"order_index" gorm:"default:0"` // Course order in program, dense from 0
	IsActive    bool                        `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
