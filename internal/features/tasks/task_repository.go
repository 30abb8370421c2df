package tasks

import (
	"errors"
	"fmt"

	projects_models "agilcurn/internal/features/projects/models"
	"agilcurn/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct{}

func (r *TaskRepository) CreateTask(task *Task) error {
	if err := storage.GetDb().Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetTaskByID(taskID uuid.UUID) (*Task, error) {
	var task Task

	err := storage.GetDb().
		Where("id = ?", taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

func (r *TaskRepository) GetTasksByProject(projectID uuid.UUID) ([]*Task, error) {
	var tasks []*Task

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for project: %w", err)
	}

	return tasks, nil
}

// GetTasksForUser returns every task of every project the user belongs to,
// as creator or confirmed invitee.
func (r *TaskRepository) GetTasksForUser(userID uuid.UUID) ([]*Task, error) {
	var tasks []*Task

	memberProjects := storage.GetDb().
		Model(&projects_models.Project{}).
		Select("id").
		Where(
			"creator_id = ? OR id IN (?)",
			userID,
			storage.GetDb().
				Model(&projects_models.InvitationToProject{}).
				Select("project_id").
				Where("invited_id = ? AND confirmed = ?", userID, true),
		)

	err := storage.GetDb().
		Where("project_id IN (?)", memberProjects).
		Order("created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks for user: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) UpdateTask(task *Task) error {
	err := storage.GetDb().Model(&Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"assignee_id": task.AssigneeID,
			"sprint_id":   task.SprintID,
			"updated_at":  task.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) DeleteTask(taskID uuid.UUID) error {
	err := storage.GetDb().
		Where("id = ?", taskID).
		Delete(&Task{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// UnassignSprintTasks detaches every task from a sprint; tasks themselves
// survive sprint deletion.
func (r *TaskRepository) UnassignSprintTasks(tx *gorm.DB, sprintID uuid.UUID) error {
	err := tx.Model(&Task{}).
		Where("sprint_id = ?", sprintID).
		Update("sprint_id", nil).Error
	if err != nil {
		return fmt.Errorf("failed to unassign sprint tasks: %w", err)
	}
	return nil
}

func (r *TaskRepository) DeleteTasksForProject(tx *gorm.DB, projectID uuid.UUID) error {
	err := tx.
		Where("project_id = ?", projectID).
		Delete(&Task{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete tasks for project: %w", err)
	}
	return nil
}
