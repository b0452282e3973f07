package models

import "time"

// Progress tracks how far an account has read into a story, one row per
// account and story, upserted in place.
type Progress struct {
	AccountID  uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	StoryID    uint      `json:"story_id" gorm:"primaryKey;autoIncrement:false"`
	Percentage int       `json:"percentage"`
	UpdatedAt  time.Time `json:"updated_at"`
}
