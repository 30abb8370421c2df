package projects_interfaces

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectDeletionListener lets other features remove their project-scoped
// rows inside the same transaction that deletes the project.
type ProjectDeletionListener interface {
	OnBeforeProjectDeletion(tx *gorm.DB, projectID uuid.UUID) error
}

// SprintWindow is the date window of one sprint, as seen from the project
// feature when project dates change.
type SprintWindow struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// SprintCoordinator exposes sprint windows to project date updates without a
// dependency on the tasks feature.
type SprintCoordinator interface {
	ListSprintWindows(projectID uuid.UUID) ([]SprintWindow, error)
	UpdateSprintWindows(tx *gorm.DB, projectID uuid.UUID, windows []SprintWindow) error
}
