package tasks

import (
	projects_interfaces "agilcurn/internal/features/projects/interfaces"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// projectCoordinator is how the projects feature reaches sprints and tasks:
// it fixes sprint windows on project date changes and cascades project
// deletion, all inside the caller's transaction.
type projectCoordinator struct {
	sprintRepository *SprintRepository
	taskRepository   *TaskRepository
}

func (c *projectCoordinator) ListSprintWindows(projectID uuid.UUID) ([]projects_interfaces.SprintWindow, error) {
	sprints, err := c.sprintRepository.GetSprintsByProject(projectID)
	if err != nil {
		return nil, err
	}

	windows := make([]projects_interfaces.SprintWindow, len(sprints))
	for i, sprint := range sprints {
		windows[i] = projects_interfaces.SprintWindow{
			ID:        sprint.ID,
			Name:      sprint.SprintName,
			StartDate: sprint.StartDate,
			EndDate:   sprint.EndDate,
		}
	}

	return windows, nil
}

func (c *projectCoordinator) UpdateSprintWindows(tx *gorm.DB, projectID uuid.UUID, windows []projects_interfaces.SprintWindow) error {
	for _, window := range windows {
		err := c.sprintRepository.UpdateSprintDates(tx, window.ID, &Sprint{
			StartDate: window.StartDate,
			EndDate:   window.EndDate,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *projectCoordinator) OnBeforeProjectDeletion(tx *gorm.DB, projectID uuid.UUID) error {
	if err := c.taskRepository.DeleteTasksForProject(tx, projectID); err != nil {
		return err
	}

	return c.sprintRepository.DeleteSprintsForProject(tx, projectID)
}
