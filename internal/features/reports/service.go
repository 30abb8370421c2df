package reports

import (
	"fmt"
	"log/slog"
	"time"

	projects_models "agilcurn/internal/features/projects/models"
	projects_services "agilcurn/internal/features/projects/services"
	"agilcurn/internal/features/tasks"
	users_models "agilcurn/internal/features/users/models"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/notifications"
	"agilcurn/internal/util/apperrors"

	"github.com/google/uuid"
)

// A task sitting in TODO or IN_PROGRESS without movement for longer than
// this is reported as a bottleneck. The age is compared as a duration; the
// reported day count is floored for display only.
const (
	bottleneckThresholdDays = 7
	bottleneckThreshold     = bottleneckThresholdDays * 24 * time.Hour
)

type ReportService struct {
	taskRepository    *tasks.TaskRepository
	projectService    *projects_services.ProjectService
	membershipService *projects_services.MembershipService
	userService       *users_services.UserService
	dispatcher        *notifications.Dispatcher
	logger            *slog.Logger
}

// GetProjectStatus returns task counts per status and overall progress.
func (s *ReportService) GetProjectStatus(user *users_models.User, projectID uuid.UUID) (*ProjectStatusReportDTO, error) {
	project, err := s.requireMembership(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	return s.buildProjectStatus(project)
}

// GetAllProjectStatuses computes the status report for every project the
// caller belongs to.
func (s *ReportService) GetAllProjectStatuses(user *users_models.User) (*ListProjectStatusesResponseDTO, error) {
	projects, err := s.projectService.GetMemberProjects(user.ID)
	if err != nil {
		return nil, err
	}

	response := &ListProjectStatusesResponseDTO{
		Projects: make([]ProjectStatusReportDTO, 0, len(projects)),
	}

	for _, project := range projects {
		report, err := s.buildProjectStatus(project)
		if err != nil {
			return nil, err
		}
		response.Projects = append(response.Projects, *report)
	}

	return response, nil
}

func (s *ReportService) buildProjectStatus(project *projects_models.Project) (*ProjectStatusReportDTO, error) {
	projectTasks, err := s.taskRepository.GetTasksByProject(project.ID)
	if err != nil {
		return nil, err
	}

	report := &ProjectStatusReportDTO{
		ProjectID:   project.ID,
		ProjectName: project.Name,
	}
	for _, task := range projectTasks {
		report.TotalTasks++
		switch task.Status {
		case tasks.TaskStatusTodo:
			report.TodoTasks++
		case tasks.TaskStatusInProgress:
			report.InProgressTasks++
		case tasks.TaskStatusDone:
			report.DoneTasks++
		}
	}

	if report.TotalTasks > 0 {
		report.Progress = float64(report.DoneTasks) / float64(report.TotalTasks) * 100
	}

	return report, nil
}

// GetTeamProductivity groups tasks updated in the period by member. Tasks
// without an assignee count towards their creator.
func (s *ReportService) GetTeamProductivity(
	user *users_models.User,
	projectID uuid.UUID,
	startDate time.Time,
	endDate time.Time,
) (*TeamProductivityReportDTO, error) {
	if _, err := s.requireMembership(projectID, user.ID); err != nil {
		return nil, err
	}

	if endDate.Before(startDate) {
		return nil, apperrors.InvalidArgument("end date cannot be before start date")
	}

	projectTasks, err := s.taskRepository.GetTasksByProject(projectID)
	if err != nil {
		return nil, err
	}

	byMember := map[uuid.UUID]*MemberProductivityDTO{}
	memberOrder := []uuid.UUID{}

	for _, task := range projectTasks {
		if task.UpdatedAt.Before(startDate) || task.UpdatedAt.After(endDate) {
			continue
		}

		memberID := task.CreatorID
		if task.AssigneeID != nil {
			memberID = *task.AssigneeID
		}

		entry, exists := byMember[memberID]
		if !exists {
			entry = &MemberProductivityDTO{UserID: memberID}
			byMember[memberID] = entry
			memberOrder = append(memberOrder, memberID)
		}

		switch task.Status {
		case tasks.TaskStatusDone:
			entry.CompletedTasks++
		case tasks.TaskStatusInProgress:
			entry.InProgressTasks++
		default:
			entry.IncompleteTasks++
		}
	}

	report := &TeamProductivityReportDTO{
		ProjectID: projectID,
		StartDate: startDate,
		EndDate:   endDate,
		Members:   make([]MemberProductivityDTO, 0, len(memberOrder)),
	}

	for _, memberID := range memberOrder {
		entry := byMember[memberID]

		member, err := s.userService.GetUserByID(memberID)
		if err != nil {
			s.logger.Warn("failed to resolve member name for report", "userId", memberID, "error", err)
		} else if member != nil {
			entry.Fullname = member.Fullname
		}

		report.Members = append(report.Members, *entry)
	}

	return report, nil
}

// DetectBottlenecks finds stalled tasks and alerts the people responsible
// for them. Alerts are suppressed for ended projects, but the stalled tasks
// are still reported.
func (s *ReportService) DetectBottlenecks(user *users_models.User, projectID uuid.UUID) (*BottleneckReportDTO, error) {
	project, err := s.requireMembership(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	return s.detectProjectBottlenecks(project, true)
}

// DetectAllBottlenecks runs bottleneck detection over every project the
// caller belongs to, with the same alerting as the per-project query.
func (s *ReportService) DetectAllBottlenecks(user *users_models.User) (*ListBottlenecksResponseDTO, error) {
	projects, err := s.projectService.GetMemberProjects(user.ID)
	if err != nil {
		return nil, err
	}

	response := &ListBottlenecksResponseDTO{Bottlenecks: []BottleneckTaskDTO{}}

	for _, project := range projects {
		report, err := s.detectProjectBottlenecks(project, true)
		if err != nil {
			return nil, err
		}
		response.Bottlenecks = append(response.Bottlenecks, report.Bottlenecks...)
	}

	return response, nil
}

// SweepProject runs bottleneck detection for one project without a caller,
// used by the weekly background sweep.
func (s *ReportService) SweepProject(project *projects_models.Project) error {
	_, err := s.detectProjectBottlenecks(project, true)
	return err
}

func (s *ReportService) detectProjectBottlenecks(
	project *projects_models.Project,
	alert bool,
) (*BottleneckReportDTO, error) {
	projectTasks, err := s.taskRepository.GetTasksByProject(project.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	report := &BottleneckReportDTO{
		ProjectID:   project.ID,
		Bottlenecks: []BottleneckTaskDTO{},
	}

	var stalled []*tasks.Task
	for _, task := range projectTasks {
		if task.Status == tasks.TaskStatusDone {
			continue
		}

		age := now.Sub(task.UpdatedAt)
		if age <= bottleneckThreshold {
			continue
		}

		stalled = append(stalled, task)
		report.Bottlenecks = append(report.Bottlenecks, BottleneckTaskDTO{
			TaskID:      task.ID,
			Title:       task.Title,
			Status:      string(task.Status),
			ProjectID:   project.ID,
			ProjectName: project.Name,
			AssigneeID:  task.AssigneeID,
			DaysStalled: int(age.Hours() / 24),
		})
	}

	if alert && !project.HasEnded(now) {
		s.alertBottlenecks(project, stalled)
	}

	return report, nil
}

func (s *ReportService) alertBottlenecks(project *projects_models.Project, stalled []*tasks.Task) {
	if len(stalled) == 0 {
		return
	}

	events := []notifications.Event{}

	for _, task := range stalled {
		events = append(events, notifications.RealtimeEvent(notifications.ChannelBottleneckAlert, task))

		responsibleID := task.CreatorID
		if task.AssigneeID != nil {
			responsibleID = *task.AssigneeID
		}

		responsible, err := s.userService.GetUserByID(responsibleID)
		if err != nil {
			s.logger.Warn("failed to resolve responsible user for bottleneck alert", "error", err)
			continue
		}

		if responsible != nil && responsible.HasPushToken() {
			events = append(events, notifications.PushEvent(
				*responsible.ExpoPushToken,
				"Task is stalled",
				fmt.Sprintf("%q in project %q has not moved for over %d days", task.Title, project.Name, bottleneckThresholdDays),
				map[string]string{"taskId": task.ID.String()},
			))
		}
	}

	s.dispatcher.Dispatch(events...)
}

func (s *ReportService) requireMembership(projectID uuid.UUID, userID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectService.GetProjectCached(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.NotFound("project does not exist")
	}

	isMember, err := s.membershipService.IsMember(project, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.Forbidden("you are not a member of this project")
	}

	return project, nil
}
