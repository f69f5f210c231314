package model

import "time"

// Comment represents a comment on a post. Both the post and the author are
// required and existence-checked at creation.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Post   Post `json:"-" gorm:"foreignKey:PostID"`
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}
