package models

// Administrator is an account that can manage blog content.
// "Deleting" an administrator only flips IsActive; rows are never removed,
// so email uniqueness holds across deactivated accounts too.
type Administrator struct {
	Base
	Email     string `json:"email"      gorm:"uniqueIndex;not null"`
	Password  string `json:"-"          gorm:"not null"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"  gorm:"default:true;index"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
}

func (Administrator) TableName() string { return "administrators" }
