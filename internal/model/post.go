package model

import "time"

// Post represents a blog post. Slug is derived from the title at creation
// time and unique across all posts; it is nil only before the first save.
// AuthorID is fixed at creation and never changes afterwards.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Slug      *string   `json:"slug" gorm:"uniqueIndex;size:255"`
	IsPrivate bool      `json:"is_private" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author   User      `json:"author" gorm:"foreignKey:AuthorID"`
	Tags     []Tag     `json:"tags" gorm:"many2many:post_tags"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

// VisibleTo reports whether the post may be observed by the given viewer.
// A nil viewerID means anonymous. Private posts are visible to their author
// only; public posts are visible to everyone.
func (p *Post) VisibleTo(viewerID *uint) bool {
	if !p.IsPrivate {
		return true
	}
	return viewerID != nil && *viewerID == p.AuthorID
}

// TagNames returns the canonical tag names attached to the post, in order.
func (p *Post) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}
