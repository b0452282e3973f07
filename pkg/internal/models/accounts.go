package models

// Account is the local row for an identity owned by the external auth
// provider. It is created lazily the first time its holder makes an
// authenticated request (sync on demand), never via a register endpoint.
type Account struct {
	BaseModel

	IdentityID string `json:"identity_id" gorm:"uniqueIndex"`
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	Avatar     string `json:"avatar"`

	Stories []Story `json:"stories,omitempty" gorm:"foreignKey:AuthorID"`
}
