package model

import "time"

// Tag name length constraints, enforced at the service layer.
const (
	TagNameMinLen = 2
	TagNameMaxLen = 30
)

// Tag represents a post tag. Tags are created lazily when a post references
// an unknown name and are never garbage-collected when posts drop them.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:30;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
