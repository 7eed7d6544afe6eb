package models

import "time"

// Reaction is a boolean like: the pair (PostID, AccountID) either
// exists or it does not. The unique index keeps one row per account.
type Reaction struct {
	ID        uint `gorm:"primaryKey"`
	PostID    uint `json:"post_id" gorm:"index;uniqueIndex:idx_post_account"`
	AccountID uint `json:"account_id" gorm:"uniqueIndex:idx_post_account"`

	CreatedAt time.Time `json:"-"`
}

func (Reaction) TableName() string {
	return "reactions"
}
