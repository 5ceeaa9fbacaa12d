package services

import (
	"fmt"

	"github.com/taskhub/task-tracker-api/internal/models"
	"github.com/taskhub/task-tracker-api/internal/repository"
)

// AggregationService produces the aggregated task view: every task paired
// with the users assigned to it, resolved fresh on every call.
//
// Consistency model: read-committed, no snapshot isolation. The view is
// built from batched queries rather than a transaction, so writes landing
// mid-read can surface a mix of pre- and post-change state. Reads are
// strictly side-effect free and the whole call is safe to retry.
type AggregationService struct {
	taskRepo repository.TaskRepository
}

// NewAggregationService creates a new AggregationService
func NewAggregationService(taskRepo repository.TaskRepository) *AggregationService {
	return &AggregationService{
		taskRepo: taskRepo,
	}
}

// AggregateAll returns every task with assignments and their users
// preloaded, tasks in creation order and assignments in insertion order.
// Any store failure aborts the whole view; no partial result is returned.
func (s *AggregationService) AggregateAll() ([]models.Task, error) {
	tasks, err := s.taskRepo.ListWithResponsibles()
	if err != nil {
		return nil, fmt.Errorf("failed to build aggregated task view: %w", err)
	}
	return tasks, nil
}
