package repository

import (
	"github.com/taskhub/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// paginate is a GORM scope applying page-based offset/limit.
func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Search retrieves users with filtering and pagination
	Search(filter UserFilter) ([]models.User, int64, error)

	// Delete removes a user. Assignment rows referencing the user are
	// intentionally left in place.
	Delete(id string) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	// NameContains matches a case-insensitive substring of the name.
	// Empty means no filter.
	NameContains string
	Page         int
	PageSize     int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Task, error)

	// Search retrieves tasks with filtering and pagination
	Search(filter TaskFilter) ([]models.Task, int64, error)

	// Update overwrites the task row identified by id, including a
	// possible change of the primary key itself.
	Update(id string, task *models.Task) error

	// Delete removes a task and its assignment rows in one transaction
	Delete(id string) error

	// CreateAssignment links a user to a task. Inserting an existing
	// pair violates the composite primary key.
	CreateAssignment(assignment *models.TaskAssignment) error

	// FindAssignment finds a specific task assignment
	FindAssignment(taskID, userID string) (*models.TaskAssignment, error)

	// DeleteAssignment removes the exact pair. Removing an absent pair
	// is not an error.
	DeleteAssignment(taskID, userID string) error

	// ListWithResponsibles returns every task with its assignments and
	// their users preloaded, assignments in insertion order.
	ListWithResponsibles() ([]models.Task, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// Term matches a case-insensitive substring of the title or the
	// description. Empty means no filter.
	Term     string
	Status   *int
	Page     int
	PageSize int
}
