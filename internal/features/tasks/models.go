package tasks

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id;primaryKey"`
	Title       string     `json:"title"       gorm:"column:title"`
	Description string     `json:"description" gorm:"column:description"`
	Status      TaskStatus `json:"status"      gorm:"column:status"`
	ProjectID   uuid.UUID  `json:"projectId"   gorm:"column:project_id"`
	CreatorID   uuid.UUID  `json:"creatorId"   gorm:"column:creator_id"`
	AssigneeID  *uuid.UUID `json:"assigneeId"  gorm:"column:assignee_id"`
	SprintID    *uuid.UUID `json:"sprintId"    gorm:"column:sprint_id"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsOwnedBy reports whether the user created the task or is assigned to it.
func (t *Task) IsOwnedBy(userID uuid.UUID) bool {
	if t.CreatorID == userID {
		return true
	}
	return t.AssigneeID != nil && *t.AssigneeID == userID
}

type Sprint struct {
	ID         uuid.UUID `json:"id"         gorm:"column:id;primaryKey"`
	SprintName string    `json:"sprintName" gorm:"column:sprint_name"`
	ProjectID  uuid.UUID `json:"projectId"  gorm:"column:project_id"`
	StartDate  time.Time `json:"startDate"  gorm:"column:start_date"`
	EndDate    time.Time `json:"endDate"    gorm:"column:end_date"`
	CreatedAt  time.Time `json:"createdAt"  gorm:"column:created_at"`
}

func (Sprint) TableName() string {
	return "sprints"
}

// IsClosed reports whether the sprint window has passed. Tasks in a closed
// sprint are frozen.
func (s *Sprint) IsClosed(now time.Time) bool {
	return s.EndDate.Before(now)
}
