package projects_services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	projects_dto "agilcurn/internal/features/projects/dto"
	projects_interfaces "agilcurn/internal/features/projects/interfaces"
	projects_models "agilcurn/internal/features/projects/models"
	projects_repositories "agilcurn/internal/features/projects/repositories"
	"agilcurn/internal/features/roles"
	users_interfaces "agilcurn/internal/features/users/interfaces"
	users_models "agilcurn/internal/features/users/models"
	"agilcurn/internal/storage"
	"agilcurn/internal/util/apperrors"
	cache_utils "agilcurn/internal/util/cache"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type ProjectService struct {
	projectRepository    *projects_repositories.ProjectRepository
	invitationRepository *projects_repositories.InvitationRepository
	userRoleRepository   *projects_repositories.UserRoleRepository
	membershipService    *MembershipService
	projectCache         *cache_utils.CacheUtil[projects_models.Project]
	singleflight         singleflight.Group // Prevents thundering herd on DB calls
	logger               *slog.Logger

	// set via SetupDependencies
	auditLogWriter    users_interfaces.AuditLogWriter
	sprintCoordinator projects_interfaces.SprintCoordinator
	deletionListeners []projects_interfaces.ProjectDeletionListener
}

func (s *ProjectService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *ProjectService) SetSprintCoordinator(coordinator projects_interfaces.SprintCoordinator) {
	s.sprintCoordinator = coordinator
}

func (s *ProjectService) AddProjectDeletionListener(listener projects_interfaces.ProjectDeletionListener) {
	s.deletionListeners = append(s.deletionListeners, listener)
}

func (s *ProjectService) CreateProject(user *users_models.User, request *projects_dto.CreateProjectRequestDTO) (*projects_dto.ProjectResponseDTO, error) {
	if request.EndDate.Before(request.StartDate) {
		return nil, apperrors.InvalidArgument("project end date cannot be before start date")
	}

	project := &projects_models.Project{
		ID:        uuid.New(),
		Name:      request.Name,
		CreatorID: user.ID,
		StartDate: request.StartDate,
		EndDate:   request.EndDate,
		CreatedAt: time.Now().UTC(),
	}

	// The creator becomes product owner in the same transaction, so a
	// project can never exist without an owner role.
	err := storage.Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepository.CreateProject(tx, project); err != nil {
			return err
		}

		return s.userRoleRepository.CreateUserRole(tx, &projects_models.UserRole{
			ID:        uuid.New(),
			UserID:    user.ID,
			ProjectID: project.ID,
			RoleID:    roles.RoleProductOwner,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.projectCache.Set(project.ID.String(), project)

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project created: %s", project.Name),
		&user.ID,
		&project.ID,
	)

	creatorRole := roles.RoleProductOwner
	return projectToDTO(project, &creatorRole), nil
}

func (s *ProjectService) GetUserProjects(userID uuid.UUID) (*projects_dto.ListProjectsResponseDTO, error) {
	projects, err := s.projectRepository.GetProjectsForUser(userID)
	if err != nil {
		return nil, err
	}

	response := &projects_dto.ListProjectsResponseDTO{
		Projects: make([]projects_dto.ProjectResponseDTO, len(projects)),
	}

	for i, project := range projects {
		roleID, err := s.membershipService.RoleOf(project.ID, userID)
		if err != nil {
			return nil, err
		}
		response.Projects[i] = *projectToDTO(project, roleID)
	}

	return response, nil
}

func (s *ProjectService) GetProject(projectID uuid.UUID, userID uuid.UUID) (*projects_dto.ProjectResponseDTO, error) {
	project, err := s.requireMembership(projectID, userID)
	if err != nil {
		return nil, err
	}

	roleID, err := s.membershipService.RoleOf(projectID, userID)
	if err != nil {
		return nil, err
	}

	return projectToDTO(project, roleID), nil
}

func (s *ProjectService) GetProjectMembers(projectID uuid.UUID, userID uuid.UUID) (*projects_dto.GetMembersResponseDTO, error) {
	if _, err := s.requireMembership(projectID, userID); err != nil {
		return nil, err
	}

	members, err := s.userRoleRepository.GetProjectMembers(projectID)
	if err != nil {
		return nil, err
	}

	return &projects_dto.GetMembersResponseDTO{Members: members}, nil
}

func (s *ProjectService) UpdateProject(userID uuid.UUID, projectID uuid.UUID, request *projects_dto.UpdateProjectRequestDTO) (*projects_dto.ProjectResponseDTO, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.NotFound("project does not exist")
	}

	roleID, err := s.membershipService.RoleOf(projectID, userID)
	if err != nil {
		return nil, err
	}
	if roleID == nil || *roleID != roles.RoleProductOwner {
		return nil, apperrors.Forbidden("only the product owner can update the project")
	}

	if request.Name != nil {
		project.Name = *request.Name
	}

	datesChanged := false
	if request.StartDate != nil {
		project.StartDate = *request.StartDate
		datesChanged = true
	}
	if request.EndDate != nil {
		project.EndDate = *request.EndDate
		datesChanged = true
	}

	if project.EndDate.Before(project.StartDate) {
		return nil, apperrors.InvalidArgument("project end date cannot be before start date")
	}

	correctedWindows, err := s.validateSprintWindows(project, request.Sprints, datesChanged)
	if err != nil {
		return nil, err
	}

	err = storage.Transaction(func(tx *gorm.DB) error {
		if err := s.projectRepository.UpdateProject(tx, project); err != nil {
			return err
		}

		if len(correctedWindows) > 0 {
			return s.sprintCoordinator.UpdateSprintWindows(tx, projectID, correctedWindows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.projectCache.Invalidate(projectID.String())

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project updated: %s", project.Name),
		&userID,
		&projectID,
	)

	return projectToDTO(project, roleID), nil
}

// validateSprintWindows ensures that after a project date change every sprint
// still fits inside the project window, applying the corrections supplied
// with the request. Sprints left out of bounds reject the whole update.
func (s *ProjectService) validateSprintWindows(
	project *projects_models.Project,
	corrections []projects_dto.SprintDatesDTO,
	datesChanged bool,
) ([]projects_interfaces.SprintWindow, error) {
	if !datesChanged && len(corrections) == 0 {
		return nil, nil
	}

	correctedByID := make(map[uuid.UUID]projects_dto.SprintDatesDTO, len(corrections))
	for _, correction := range corrections {
		correctedByID[correction.ID] = correction
	}

	windows, err := s.sprintCoordinator.ListSprintWindows(project.ID)
	if err != nil {
		return nil, err
	}

	var outOfBounds []string
	var toUpdate []projects_interfaces.SprintWindow

	for _, window := range windows {
		if correction, ok := correctedByID[window.ID]; ok {
			window.StartDate = correction.StartDate
			window.EndDate = correction.EndDate
			toUpdate = append(toUpdate, window)
		}

		if window.StartDate.Before(project.StartDate) || window.EndDate.After(project.EndDate) {
			outOfBounds = append(outOfBounds, window.Name)
		}
	}

	if len(outOfBounds) > 0 {
		return nil, apperrors.InvalidArgument(fmt.Sprintf(
			"sprints do not fit the new project dates, correct them first: %s",
			strings.Join(outOfBounds, ", "),
		))
	}

	return toUpdate, nil
}

func (s *ProjectService) DeleteProject(userID uuid.UUID, projectID uuid.UUID) error {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apperrors.NotFound("project does not exist")
	}

	if project.CreatorID != userID {
		return apperrors.Forbidden("only the project creator can delete the project")
	}

	err = storage.Transaction(func(tx *gorm.DB) error {
		for _, listener := range s.deletionListeners {
			if err := listener.OnBeforeProjectDeletion(tx, projectID); err != nil {
				return err
			}
		}

		if err := s.invitationRepository.DeleteInvitationsForProject(tx, projectID); err != nil {
			return err
		}

		if err := s.userRoleRepository.DeleteUserRolesForProject(tx, projectID); err != nil {
			return err
		}

		return s.projectRepository.DeleteProject(tx, projectID)
	})
	if err != nil {
		return err
	}

	s.projectCache.Invalidate(projectID.String())

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Project deleted: %s", project.Name),
		&userID,
		&projectID,
	)

	return nil
}

// GetAllProjects is used by background sweeps, not by the API surface.
func (s *ProjectService) GetAllProjects() ([]*projects_models.Project, error) {
	return s.projectRepository.GetAllProjects()
}

// GetMemberProjects returns the projects the user belongs to, for
// cross-project reporting.
func (s *ProjectService) GetMemberProjects(userID uuid.UUID) ([]*projects_models.Project, error) {
	return s.projectRepository.GetProjectsForUser(userID)
}

// GetProjectCached resolves a project through the cache, storing negative
// results so repeated lookups of missing projects skip the database.
func (s *ProjectService) GetProjectCached(projectID uuid.UUID) (*projects_models.Project, error) {
	cached := s.projectCache.Get(projectID.String())
	if cached != nil {
		if cached.IsNotExists {
			return nil, nil
		}
		return cached, nil
	}

	result, err, _ := s.singleflight.Do(projectID.String(), func() (any, error) {
		return s.projectRepository.GetProjectByID(projectID)
	})
	if err != nil {
		return nil, err
	}

	project, _ := result.(*projects_models.Project)
	if project == nil {
		s.projectCache.Set(projectID.String(), &projects_models.Project{ID: projectID, IsNotExists: true})
		return nil, nil
	}

	s.projectCache.Set(projectID.String(), project)
	return project, nil
}

// requireMembership loads the project and verifies the caller belongs to it.
func (s *ProjectService) requireMembership(projectID uuid.UUID, userID uuid.UUID) (*projects_models.Project, error) {
	project, err := s.projectRepository.GetProjectByID(projectID)
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

func projectToDTO(project *projects_models.Project, roleID *roles.RoleID) *projects_dto.ProjectResponseDTO {
	return &projects_dto.ProjectResponseDTO{
		ID:        project.ID,
		Name:      project.Name,
		CreatorID: project.CreatorID,
		StartDate: project.StartDate,
		EndDate:   project.EndDate,
		CreatedAt: project.CreatedAt,
		RoleID:    roleID,
	}
}
