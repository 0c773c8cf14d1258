package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is the content-site schema. Unlike Prompt it carries no category
// column; the displayed category is derived from the first tag.
type Course struct {
	ID           string                      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Icon         string                      `gorm:"default:''" json:"icon"`
	Content      string                      `gorm:"type:text" json:"content"` // markdown body
	VideoURL     string                      `gorm:"default:''" json:"videoUrl"`
	ThumbnailURL string                      `gorm:"default:''" json:"thumbnailUrl"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	IsDeleted    bool                        `gorm:"default:false" json:"-"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Category returns the first tag, or "General" when untagged.
func (c *Course) Category() string {
	if len(c.Tags) > 0 {
		return c.Tags[0]
	}
	return "General"
}
