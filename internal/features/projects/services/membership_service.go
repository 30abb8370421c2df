package projects_services

import (
	"fmt"

	projects_models "agilcurn/internal/features/projects/models"
	projects_repositories "agilcurn/internal/features/projects/repositories"
	"agilcurn/internal/features/roles"

	"github.com/google/uuid"
)

// MembershipService is the single authority on who belongs to a project and
// with what role. Every permission check in the system goes through it; any
// lookup failure resolves to "not a member".
type MembershipService struct {
	projectRepository    *projects_repositories.ProjectRepository
	invitationRepository *projects_repositories.InvitationRepository
	userRoleRepository   *projects_repositories.UserRoleRepository
}

// IsMember reports whether the user created the project or joined it through
// a confirmed invitation.
func (s *MembershipService) IsMember(project *projects_models.Project, userID uuid.UUID) (bool, error) {
	if project == nil {
		return false, nil
	}

	if project.CreatorID == userID {
		return true, nil
	}

	invitation, err := s.invitationRepository.GetConfirmedInvitation(project.ID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return invitation != nil, nil
}

// RoleOf returns the user's role in the project, or nil when the user holds
// no role there.
func (s *MembershipService) RoleOf(projectID uuid.UUID, userID uuid.UUID) (*roles.RoleID, error) {
	userRole, err := s.userRoleRepository.GetUserRole(projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role: %w", err)
	}

	if userRole == nil {
		return nil, nil
	}

	roleID := userRole.RoleID
	return &roleID, nil
}
