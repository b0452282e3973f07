package models

// Comment lives and dies with its parent story. AuthorName is a snapshot of
// the account name at creation time and is intentionally never synced with
// later renames.
type Comment struct {
	BaseModel

	Body       string `json:"body"`
	AuthorName string `json:"author_name"`

	StoryID   uint `json:"story_id"`
	AccountID uint `json:"account_id"`
}
