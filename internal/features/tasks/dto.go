package tasks

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequestDTO struct {
	Title       string     `json:"title"       binding:"required,min=1,max=255"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	SprintID    *uuid.UUID `json:"sprintId"`
}

type UpdateTaskStatusRequestDTO struct {
	Status TaskStatus `json:"status" binding:"required"`
}

type AssignSprintRequestDTO struct {
	SprintID uuid.UUID `json:"sprintId" binding:"required"`
}

type ListTasksResponseDTO struct {
	Tasks []*Task `json:"tasks"`
}

type CreateSprintRequestDTO struct {
	SprintName string    `json:"sprintName" binding:"required,min=1,max=255"`
	StartDate  time.Time `json:"startDate"  binding:"required"`
	EndDate    time.Time `json:"endDate"    binding:"required"`
}

type ListSprintsResponseDTO struct {
	Sprints []*Sprint `json:"sprints"`
}
