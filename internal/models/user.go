package models

type User struct {
	ID       string `gorm:"primarykey;type:varchar(64)" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"password"`

	// Relations
	Assignments []TaskAssignment `gorm:"foreignKey:UserID;references:ID" json:"-"`
}
