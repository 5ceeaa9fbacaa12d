package models

type Task struct {
	ID          string `gorm:"primarykey;type:varchar(64)" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	CreatedAt   string `gorm:"type:varchar(32);not null" json:"created_at"`
	// Status is a numeric flag: 0 = pending, 1 = done.
	Status int `gorm:"not null;default:0" json:"status"`

	// Relations
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID;references:ID" json:"assignments,omitempty"`
}
