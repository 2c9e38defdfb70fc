package models

import "time"

// FeaturedProject is a campus initiative highlighted on the explore screen.
type FeaturedProject struct {
	ID     string  `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title  string  `gorm:"not null" json:"title"`
	Image  string  `json:"image"`
	Funded float64 `json:"funded"`
	Goal   float64 `json:"goal"`
}

type Notification struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Type      string    `gorm:"not null" json:"type"`
	UserID    string    `gorm:"index" json:"userId"`
	PostID    string    `json:"postId,omitempty"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// KVEntry is a single durable key-value pair.
type KVEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(128)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
