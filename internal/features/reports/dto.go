package reports

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatusReportDTO struct {
	ProjectID       uuid.UUID `json:"projectId"`
	ProjectName     string    `json:"projectName"`
	TotalTasks      int       `json:"totalTasks"`
	TodoTasks       int       `json:"todoTasks"`
	InProgressTasks int       `json:"inProgressTasks"`
	DoneTasks       int       `json:"doneTasks"`
	// Percentage of done tasks, 0 when the project has no tasks
	Progress float64 `json:"progress"`
}

type MemberProductivityDTO struct {
	UserID          uuid.UUID `json:"userId"`
	Fullname        string    `json:"fullname"`
	CompletedTasks  int       `json:"completedTasks"`
	InProgressTasks int       `json:"inProgressTasks"`
	IncompleteTasks int       `json:"incompleteTasks"`
}

type TeamProductivityReportDTO struct {
	ProjectID uuid.UUID               `json:"projectId"`
	StartDate time.Time               `json:"startDate"`
	EndDate   time.Time               `json:"endDate"`
	Members   []MemberProductivityDTO `json:"members"`
}

type ListProjectStatusesResponseDTO struct {
	Projects []ProjectStatusReportDTO `json:"projects"`
}

type BottleneckTaskDTO struct {
	TaskID      uuid.UUID  `json:"taskId"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	ProjectID   uuid.UUID  `json:"projectId"`
	ProjectName string     `json:"projectName"`
	AssigneeID  *uuid.UUID `json:"assigneeId"`
	DaysStalled int        `json:"daysStalled"`
}

type BottleneckReportDTO struct {
	ProjectID   uuid.UUID           `json:"projectId"`
	Bottlenecks []BottleneckTaskDTO `json:"bottlenecks"`
}

type ListBottlenecksResponseDTO struct {
	Bottlenecks []BottleneckTaskDTO `json:"bottlenecks"`
}
