package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/task-tracker-api/internal/database"
	apierrors "github.com/taskhub/task-tracker-api/internal/errors"
	"github.com/taskhub/task-tracker-api/internal/models"
	"gorm.io/gorm"
)

const contextKeyTask = "task"

// RequireTask loads the task named by the :id route parameter and aborts
// with 404 if it does not exist. Handlers behind it read the task from
// the context instead of querying again.
func RequireTask() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID := c.Param("id")

		var task models.Task
		if err := database.GetDB().First(&task, "id = ?", taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				apierrors.InternalError(c, "Failed to load task")
			}
			c.Abort()
			return
		}

		c.Set(contextKeyTask, task)
		c.Next()
	}
}

// GetTask retrieves the task stored in the context by RequireTask
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(contextKeyTask)
	if !exists {
		return models.Task{}, false
	}

	task, ok := value.(models.Task)
	return task, ok
}
