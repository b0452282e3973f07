package models

import (
	"time"

	"gorm.io/datatypes"
)

type Story struct {
	BaseModel

	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Language string `json:"language"`

	ImageURLs datatypes.JSONSlice[string] `json:"image_urls"`
	AudioURL  *string                     `json:"audio_url"`
	VideoURL  *string                     `json:"video_url"`

	AuthorID uint     `json:"author_id"`
	Author   *Account `json:"author"`

	Comments  []Comment  `json:"comments,omitempty"`
	Reactions []Reaction `json:"-"`

	// Filled by the services layer, not stored
	Likes     []uint      `json:"likes" gorm:"-"`
	Bookmarks []uint      `json:"bookmarks" gorm:"-"`
	Metric    StoryMetric `json:"metric" gorm:"-"`
}

type StoryMetric struct {
	LikeCount     int64 `json:"like_count"`
	BookmarkCount int64 `json:"bookmark_count"`
	CommentCount  int64 `json:"comment_count"`
}

type ReactionKind = int8

const (
	ReactionLike = ReactionKind(iota)
	ReactionBookmark
)

// Reaction is one account's like or bookmark on one story. The composite
// primary key is what keeps an account in each set at most once; toggling
// is a row insert or delete, never an array rewrite.
type Reaction struct {
	Kind      ReactionKind `json:"kind" gorm:"primaryKey;autoIncrement:false"`
	StoryID   uint         `json:"story_id" gorm:"primaryKey;autoIncrement:false"`
	AccountID uint         `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time    `json:"created_at"`
}
