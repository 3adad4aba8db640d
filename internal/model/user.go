package model

// User — account record. Password holds a bcrypt hash, never plaintext.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"size:80;uniqueIndex;not null"`
	Password string `gorm:"size:128;not null"`
	IsAdmin  bool   `gorm:"not null;default:false"`
	Avatar   string `gorm:"size:128"` // public URL, set by avatar upload
}

func (User) TableName() string { return "user" }

// PublicView is the projection exposed by listings and the auth status endpoint.
type PublicView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func (u *User) View() PublicView {
	return PublicView{ID: u.ID, Username: u.Username}
}
