package inspiration

import (
	"time"

	"gorm.io/datatypes"
)

// Inspiration 灵感便签
type Inspiration struct {
	ID         string                      `json:"id" gorm:"primaryKey;size:36"`
	AuthorID   string                      `json:"author_id" gorm:"size:36;not null;index"`
	AuthorName string                      `json:"author_name" gorm:"size:150;not null"`
	Content    string                      `json:"content" gorm:"size:2000;not null"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Color      string                      `json:"color" gorm:"size:20;default:#fef3c7"` // 便签底色
	CreatedAt  time.Time                   `json:"created_at"`
}

func (Inspiration) TableName() string {
	return "inspirations"
}
