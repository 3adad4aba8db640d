package model

import "time"

// Item — the demo CRUD resource. UserID is set at creation and never changes:
// it is the immutable owner checked by the ownership guard.
type Item struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"size:150;not null"`
	Description string    `gorm:"type:text"`
	Timestamp   time.Time `gorm:"index;autoCreateTime"`

	FileURL string `gorm:"size:255"` // set by the item file upload

	CategoryID int64     `gorm:"not null;index"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE"`

	UserID int64 `gorm:"not null;index"` // author, immutable
	User   *User `gorm:"constraint:OnUpdate:CASCADE"`
}

func (Item) TableName() string { return "example_item" }

// OwnerID satisfies the ownership-guard contract.
func (i *Item) OwnerID() int64 { return i.UserID }

// ItemView is the joined projection returned by item endpoints.
type ItemView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Timestamp      string `json:"timestamp"`
	FileURL        string `json:"file_url"`
	UserID         int64  `json:"user_id"`
	CategoryID     int64  `json:"category_id"`
	AuthorUsername string `json:"author_username"`
	CategoryName   string `json:"category_name"`
}

// View builds the projection from the preloaded associations. Missing joins get
// placeholder names rather than failing the whole response.
func (i *Item) View() ItemView {
	v := ItemView{
		ID:             i.ID,
		Name:           i.Name,
		Description:    i.Description,
		Timestamp:      i.Timestamp.Format(time.RFC3339),
		FileURL:        i.FileURL,
		UserID:         i.UserID,
		CategoryID:     i.CategoryID,
		AuthorUsername: "unknown user",
		CategoryName:   "uncategorized",
	}
	if i.User != nil {
		v.AuthorUsername = i.User.Username
	}
	if i.Category != nil {
		v.CategoryName = i.Category.Name
	}
	return v
}
