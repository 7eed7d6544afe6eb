package models

import "time"

type Profile struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	FirstName    string `json:"first_name" gorm:"size:50"`
	LastName     string `json:"last_name" gorm:"size:50"`
	Email        string `json:"email" gorm:"size:255;uniqueIndex"`
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Name is the display name shown on posts and comments.
func (p Profile) Name() string {
	return p.FirstName + " " + p.LastName
}
