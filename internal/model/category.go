package model

// Category groups items one-to-many. Read-only after creation: no update or
// delete endpoint exists for it.
type Category struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

func (Category) TableName() string { return "example_category" }
