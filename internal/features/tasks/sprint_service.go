package tasks

import (
	"fmt"
	"log/slog"
	"time"

	projects_services "agilcurn/internal/features/projects/services"
	users_interfaces "agilcurn/internal/features/users/interfaces"
	users_models "agilcurn/internal/features/users/models"
	"agilcurn/internal/storage"
	"agilcurn/internal/util/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SprintService struct {
	sprintRepository  *SprintRepository
	taskRepository    *TaskRepository
	projectService    *projects_services.ProjectService
	membershipService *projects_services.MembershipService
	logger            *slog.Logger

	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *SprintService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *SprintService) CreateSprint(user *users_models.User, projectID uuid.UUID, request *CreateSprintRequestDTO) (*Sprint, error) {
	project, err := s.projectService.GetProjectCached(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.NotFound("project does not exist")
	}

	roleID, err := s.membershipService.RoleOf(projectID, user.ID)
	if err != nil {
		return nil, err
	}
	if roleID == nil || !roleID.CanManageSprints() {
		return nil, apperrors.Forbidden("only the product owner and the scrum master can manage sprints")
	}

	if request.EndDate.Before(request.StartDate) {
		return nil, apperrors.InvalidArgument("sprint end date cannot be before start date")
	}

	if request.EndDate.After(project.EndDate) {
		return nil, apperrors.Forbidden("sprint cannot end after the project end date")
	}

	sprint := &Sprint{
		ID:         uuid.New(),
		SprintName: request.SprintName,
		ProjectID:  projectID,
		StartDate:  request.StartDate,
		EndDate:    request.EndDate,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.sprintRepository.CreateSprint(sprint); err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Sprint created: %s", sprint.SprintName),
		&user.ID,
		&projectID,
	)

	return sprint, nil
}

// DeleteSprint removes the sprint and detaches its tasks in one transaction;
// the tasks themselves are kept.
func (s *SprintService) DeleteSprint(user *users_models.User, sprintID uuid.UUID) error {
	sprint, err := s.sprintRepository.GetSprintByID(sprintID)
	if err != nil {
		return err
	}
	if sprint == nil {
		return apperrors.NotFound("sprint does not exist")
	}

	roleID, err := s.membershipService.RoleOf(sprint.ProjectID, user.ID)
	if err != nil {
		return err
	}
	if roleID == nil || !roleID.CanManageSprints() {
		return apperrors.Forbidden("only the product owner and the scrum master can manage sprints")
	}

	err = storage.Transaction(func(tx *gorm.DB) error {
		if err := s.taskRepository.UnassignSprintTasks(tx, sprint.ID); err != nil {
			return err
		}

		return s.sprintRepository.DeleteSprint(tx, sprint.ID)
	})
	if err != nil {
		return err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Sprint deleted: %s", sprint.SprintName),
		&user.ID,
		&sprint.ProjectID,
	)

	return nil
}

func (s *SprintService) ListProjectSprints(user *users_models.User, projectID uuid.UUID) (*ListSprintsResponseDTO, error) {
	project, err := s.projectService.GetProjectCached(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.NotFound("project does not exist")
	}

	isMember, err := s.membershipService.IsMember(project, user.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.Forbidden("you are not a member of this project")
	}

	sprints, err := s.sprintRepository.GetSprintsByProject(projectID)
	if err != nil {
		return nil, err
	}

	return &ListSprintsResponseDTO{Sprints: sprints}, nil
}
