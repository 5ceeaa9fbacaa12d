package repository

import (
	"strings"

	"github.com/taskhub/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id string, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// Search retrieves tasks with filtering and pagination. The term matches a
// case-insensitive substring of the title or the description.
func (r *GormTaskRepository) Search(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})
	if filter.Term != "" {
		pattern := "%" + strings.ToLower(filter.Term) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at ASC, tasks.id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(paginate(filter.Page, filter.PageSize))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update overwrites every column of the task row identified by id. The
// explicit column list keeps zero values (status 0, empty strings already
// validated away) from being skipped, and allows the primary key itself
// to change.
func (r *GormTaskRepository) Update(id string, task *models.Task) error {
	return r.db.Model(&models.Task{}).
		Where("id = ?", id).
		Select("id", "title", "description", "created_at", "status").
		Updates(task).Error
}

// Delete removes a task and its assignment rows in one transaction
func (r *GormTaskRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, "id = ?", id).Error
	})
}

// CreateAssignment links a user to a task
func (r *GormTaskRepository) CreateAssignment(assignment *models.TaskAssignment) error {
	return r.db.Create(assignment).Error
}

// FindAssignment finds a specific task assignment
func (r *GormTaskRepository) FindAssignment(taskID, userID string) (*models.TaskAssignment, error) {
	var assignment models.TaskAssignment
	if err := r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		First(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteAssignment removes the exact task/user pair
func (r *GormTaskRepository) DeleteAssignment(taskID, userID string) error {
	return r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&models.TaskAssignment{}).Error
}

// ListWithResponsibles returns every task with assignments and users
// preloaded. One query per table instead of the per-task point lookups the
// view is defined by: the observable result is the same, tasks in creation
// order and assignments in insertion order. Assignments whose user no
// longer exists resolve to a zero-value User and are skipped by the
// presentation layer.
func (r *GormTaskRepository) ListWithResponsibles() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_assignments.created_at ASC")
		}).
		Preload("Assignments.User").
		Order("tasks.created_at ASC, tasks.id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}
