package dto

import (
	"github.com/taskhub/task-tracker-api/internal/models"
)

// UserDTO represents a user inside the aggregated task view. Password
// carries the stored (hashed) credential, never the plaintext.
type UserDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskWithUsersDTO is one element of the aggregated task view: a task's
// own fields plus the ordered list of users responsible for it.
type TaskWithUsersDTO struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    string    `json:"created_at"`
	Status       int       `json:"status"`
	Responsibles []UserDTO `json:"responsibles"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
	}
}

// ToTaskWithUsersDTO converts a task with preloaded assignments into one
// aggregated-view element. Assignments whose user did not resolve (the row
// outlived a deleted user) are skipped. Responsibles is always a list,
// never null.
func ToTaskWithUsersDTO(task models.Task) TaskWithUsersDTO {
	responsibles := make([]UserDTO, 0, len(task.Assignments))
	for _, assignment := range task.Assignments {
		if assignment.User.ID == "" {
			continue
		}
		responsibles = append(responsibles, ToUserDTO(assignment.User))
	}

	return TaskWithUsersDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		CreatedAt:    task.CreatedAt,
		Status:       task.Status,
		Responsibles: responsibles,
	}
}

// ToTaskWithUsersList converts a slice of preloaded tasks into the
// aggregated task view.
func ToTaskWithUsersList(tasks []models.Task) []TaskWithUsersDTO {
	result := make([]TaskWithUsersDTO, len(tasks))
	for i, task := range tasks {
		result[i] = ToTaskWithUsersDTO(task)
	}
	return result
}
