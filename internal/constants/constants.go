package constants

// Validation bounds
const (
	MinIDLength          = 4
	MinNameLength        = 10
	MinEmailLength       = 10
	MinTitleLength       = 10
	MinDescriptionLength = 10
	MinPasswordLength    = 8
	MaxPasswordLength    = 12
)

// Task status flags
const (
	TaskStatusPending = 0
	TaskStatusDone    = 1
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
