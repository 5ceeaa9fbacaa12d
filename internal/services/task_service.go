package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/taskhub/task-tracker-api/internal/constants"
	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
	"github.com/taskhub/task-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskIDTaken     = errors.New("task id already exists")
	ErrAlreadyAssigned = errors.New("user is already assigned to this task")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ID          string
	Title       string
	Description string
}

// UpdateTaskInput carries only the fields present in the request. A nil
// field means "leave unchanged"; a non-nil pointer to a zero value (e.g.
// status 0) is an explicit overwrite.
type UpdateTaskInput struct {
	ID          *string
	Title       *string
	Description *string
	CreatedAt   *string
	Status      *int
}

// List returns tasks, optionally filtered by a case-insensitive substring
// of the title or description and by status.
func (s *TaskService) List(term string, status *int, params utils.PaginationParams) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.Search(repository.TaskFilter{
		Term:     term,
		Status:   status,
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Create validates input, checks id uniqueness, and stores the task with
// status 0 and the creation timestamp.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	if len(input.ID) < constants.MinIDLength {
		return nil, newValidationError("id must be at least %d characters", constants.MinIDLength)
	}
	if len(input.Title) < constants.MinTitleLength {
		return nil, newValidationError("title must be at least %d characters", constants.MinTitleLength)
	}
	if len(input.Description) < constants.MinDescriptionLength {
		return nil, newValidationError("description must be at least %d characters", constants.MinDescriptionLength)
	}

	if _, err := s.taskRepo.FindByID(input.ID); err == nil {
		return nil, ErrTaskIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check task id: %w", err)
	}

	task := &models.Task{
		ID:          input.ID,
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   time.Now().UTC().Format(time.DateTime),
		Status:      constants.TaskStatusPending,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Update applies the fields present in input to the given task and
// persists the result. Provided-but-invalid values are rejected; omitted
// fields keep their current value, including a status of 0.
func (s *TaskService) Update(task models.Task, input UpdateTaskInput) (*models.Task, error) {
	oldID := task.ID

	if input.ID != nil {
		if len(*input.ID) < constants.MinIDLength {
			return nil, newValidationError("id must be at least %d characters", constants.MinIDLength)
		}
		if *input.ID != oldID {
			if _, err := s.taskRepo.FindByID(*input.ID); err == nil {
				return nil, ErrTaskIDTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("failed to check task id: %w", err)
			}
		}
		task.ID = *input.ID
	}
	if input.Title != nil {
		if len(*input.Title) < constants.MinTitleLength {
			return nil, newValidationError("title must be at least %d characters", constants.MinTitleLength)
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		if len(*input.Description) < constants.MinDescriptionLength {
			return nil, newValidationError("description must be at least %d characters", constants.MinDescriptionLength)
		}
		task.Description = *input.Description
	}
	if input.CreatedAt != nil {
		task.CreatedAt = *input.CreatedAt
	}
	if input.Status != nil {
		if *input.Status != constants.TaskStatusPending && *input.Status != constants.TaskStatusDone {
			return nil, newValidationError("status must be 0 or 1")
		}
		task.Status = *input.Status
	}

	task.Assignments = nil
	if err := s.taskRepo.Update(oldID, &task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return &task, nil
}

// Delete removes a task and its assignment rows.
func (s *TaskService) Delete(id string) error {
	if err := s.taskRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Assign links a user to a task. The task is expected to exist (callers
// resolve it first); the user is checked here, as is the pair itself:
// linking the same user twice is a conflict.
func (s *TaskService) Assign(taskID, userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.taskRepo.FindAssignment(taskID, userID); err == nil {
		return ErrAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check assignment: %w", err)
	}

	assignment := &models.TaskAssignment{
		TaskID: taskID,
		UserID: userID,
	}
	if err := s.taskRepo.CreateAssignment(assignment); err != nil {
		return fmt.Errorf("failed to assign user to task: %w", err)
	}

	return nil
}

// Unassign removes the exact task/user pair. The user must still exist;
// removing a pair that was never linked is not an error.
func (s *TaskService) Unassign(taskID, userID string) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.taskRepo.DeleteAssignment(taskID, userID); err != nil {
		return fmt.Errorf("failed to unassign user from task: %w", err)
	}

	return nil
}
