package models

// Comment is an append-only child of a post, displayed oldest first.
type Comment struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	PostID    uint   `json:"post_id" gorm:"index"`
	AccountID uint   `json:"account_id"`
	Content   string `json:"content" gorm:"type:text"`
	Timestamp int64  `json:"timestamp"`
}
