package models

import "time"

const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
)

type Notification struct {
	BaseModel

	Type string `json:"type"`

	AccountID uint  `json:"account_id"`
	ActorID   uint  `json:"actor_id"`
	StoryID   *uint `json:"story_id,omitempty"`

	ReadAt *time.Time `json:"read_at"`
}
