package models

// Post timestamps are epoch milliseconds assigned by the server on
// create; EditedOn is set only after the first edit.
type Post struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	AccountID uint   `json:"account_id" gorm:"index"`
	Caption   string `json:"caption" gorm:"type:text"`
	ImageURL  string `json:"image_url" gorm:"size:512"`
	Timestamp int64  `json:"timestamp" gorm:"index"`
	EditedOn  *int64 `json:"edited_on,omitempty"`

	Comments  []Comment  `json:"comments"`
	Reactions []Reaction `json:"reactions"`
}

// FeedMsg is published to the feed queue when a post is created or
// removed so the consumer can keep the Redis recency hint current.
type FeedMsg struct {
	PostID    uint   `json:"post_id"`
	AccountID uint   `json:"account_id"`
	Timestamp int64  `json:"timestamp"`
	Action    string `json:"action"` // "add" or "remove"
}
