package model

import "time"

// User represents a registered blog author. Domain is the user-chosen
// identifier that doubles as the blog URL segment; it is stored lowercase
// and unique.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Domain       string    `json:"domain" gorm:"uniqueIndex;size:30;not null"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
