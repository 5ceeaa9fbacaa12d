package models

import "time"

// TaskAssignment links one user to one task. The composite primary key
// makes the pair unique: linking the same user to the same task twice is
// a constraint violation, not a second row. There is no foreign-key
// enforcement, so rows may outlive the user they reference.
type TaskAssignment struct {
	TaskID    string    `gorm:"primarykey;type:varchar(64)" json:"task_id"`
	UserID    string    `gorm:"primarykey;type:varchar(64)" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}
