package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/task-tracker-api/internal/dto"
	apierrors "github.com/taskhub/task-tracker-api/internal/errors"
	"github.com/taskhub/task-tracker-api/internal/middleware"
	"github.com/taskhub/task-tracker-api/internal/services"
	"github.com/taskhub/task-tracker-api/internal/utils"
)

type TaskHandler struct {
	taskService        *services.TaskService
	aggregationService *services.AggregationService
}

func NewTaskHandler(taskService *services.TaskService, aggregationService *services.AggregationService) *TaskHandler {
	return &TaskHandler{
		taskService:        taskService,
		aggregationService: aggregationService,
	}
}

// ListTasks returns all tasks. The optional `q` parameter matches a
// case-insensitive substring of the title or the description; `status`
// filters by the numeric flag.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	searchTerm := c.Query("q")
	params := utils.GetPaginationParams(c)

	var status *int
	if statusStr := c.Query("status"); statusStr != "" {
		parsed, err := strconv.Atoi(statusStr)
		if err != nil {
			apierrors.BadRequest(c, "status must be a number (0 or 1)")
			return
		}
		status = &parsed
	}

	tasks, total, err := h.taskService.List(searchTerm, status, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		ID          string `json:"id" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			apierrors.BadRequest(c, validationErr.Error())
		case errors.Is(err, services.ErrTaskIDTaken):
			apierrors.Conflict(c, "Task id already exists")
		default:
			apierrors.InternalError(c, "Failed to create task")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    task,
	})
}

// UpdateTask partially updates a task. The raw JSON object is decoded so
// an omitted field and a field explicitly set to a zero value (status 0)
// are kept apart.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if value, present := rawReq["id"]; present {
		str, ok := value.(string)
		if !ok {
			apierrors.BadRequest(c, "id must be a string")
			return
		}
		input.ID = &str
	}
	if value, present := rawReq["title"]; present {
		str, ok := value.(string)
		if !ok {
			apierrors.BadRequest(c, "title must be a string")
			return
		}
		input.Title = &str
	}
	if value, present := rawReq["description"]; present {
		str, ok := value.(string)
		if !ok {
			apierrors.BadRequest(c, "description must be a string")
			return
		}
		input.Description = &str
	}
	if value, present := rawReq["created_at"]; present {
		str, ok := value.(string)
		if !ok {
			apierrors.BadRequest(c, "created_at must be a string")
			return
		}
		input.CreatedAt = &str
	}
	if value, present := rawReq["status"]; present {
		num, ok := value.(float64)
		if !ok {
			apierrors.BadRequest(c, "status must be a number (0 or 1)")
			return
		}
		statusValue := int(num)
		input.Status = &statusValue
	}

	updated, err := h.taskService.Update(task, input)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			apierrors.BadRequest(c, validationErr.Error())
		case errors.Is(err, services.ErrTaskIDTaken):
			apierrors.Conflict(c, "Task id already exists")
		default:
			apierrors.InternalError(c, "Failed to update task")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    updated,
	})
}

// DeleteTask deletes a task and its assignments
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.Delete(task.ID); err != nil {
		apierrors.InternalError(c, "Failed to delete task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// AssignUser links a user to the task loaded by RequireTask
func (h *TaskHandler) AssignUser(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	userID := c.Param("user_id")

	if err := h.taskService.Assign(task.ID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, "User not found")
		case errors.Is(err, services.ErrAlreadyAssigned):
			apierrors.Conflict(c, "User is already assigned to this task")
		default:
			apierrors.InternalError(c, "Failed to assign user to task")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User assigned to task successfully"})
}

// UnassignUser removes the link between a user and the task
func (h *TaskHandler) UnassignUser(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}
	userID := c.Param("user_id")

	if err := h.taskService.Unassign(task.ID, userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.NotFound(c, "User not found")
			return
		}
		apierrors.InternalError(c, "Failed to unassign user from task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unassigned from task successfully"})
}

// ListTasksWithUsers returns the aggregated task view: every task with the
// ordered list of users responsible for it. The view is rebuilt on every
// request; a store failure aborts the whole response.
func (h *TaskHandler) ListTasksWithUsers(c *gin.Context) {
	tasks, err := h.aggregationService.AggregateAll()
	if err != nil {
		apierrors.InternalError(c, "Failed to build aggregated task view")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskWithUsersList(tasks))
}
