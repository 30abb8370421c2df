package projects_services

import (
	"fmt"
	"log/slog"
	"time"

	"agilcurn/internal/config"
	projects_dto "agilcurn/internal/features/projects/dto"
	projects_models "agilcurn/internal/features/projects/models"
	projects_repositories "agilcurn/internal/features/projects/repositories"
	"agilcurn/internal/features/roles"
	users_interfaces "agilcurn/internal/features/users/interfaces"
	users_models "agilcurn/internal/features/users/models"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/notifications"
	"agilcurn/internal/storage"
	"agilcurn/internal/util/apperrors"
	"agilcurn/internal/util/rate_limit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	inviteRateLimit  = 30
	inviteRateWindow = time.Minute
)

type InvitationService struct {
	projectRepository    *projects_repositories.ProjectRepository
	invitationRepository *projects_repositories.InvitationRepository
	userRoleRepository   *projects_repositories.UserRoleRepository
	membershipService    *MembershipService
	projectService       *ProjectService
	userService          *users_services.UserService
	dispatcher           *notifications.Dispatcher
	rateLimiter          *rate_limit.RateLimiter
	logger               *slog.Logger

	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *InvitationService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// Invite creates a pending invitation and emails the invitee a confirmation
// link. Only members can invite, and a user can hold at most one confirmed
// invitation per project.
func (s *InvitationService) Invite(inviter *users_models.User, projectID uuid.UUID, request *projects_dto.InviteMemberRequestDTO) (*projects_dto.InvitationResponseDTO, error) {
	rateLimitResult, err := s.rateLimiter.CheckRateLimit(inviter.ID, inviteRateLimit, inviteRateWindow)
	if err != nil {
		s.logger.Warn("rate limit check failed, allowing invitation", "error", err)
	} else if !rateLimitResult.Allowed {
		return nil, apperrors.Forbidden("too many invitations, try again later")
	}

	if !request.RoleID.IsValid() {
		return nil, apperrors.InvalidArgument("invalid role")
	}

	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.NotFound("project does not exist")
	}

	isMember, err := s.membershipService.IsMember(project, inviter.ID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.Forbidden("you are not a member of this project")
	}

	invited, err := s.resolveInvitedUser(request)
	if err != nil {
		return nil, err
	}

	if invited.ID == project.CreatorID {
		return nil, apperrors.Conflict("user is the creator of this project")
	}

	existing, err := s.invitationRepository.GetConfirmedInvitation(projectID, invited.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("user is already a member of this project")
	}

	invitedID := invited.ID
	invitation := &projects_models.InvitationToProject{
		ID:        uuid.New(),
		ProjectID: projectID,
		InvitedID: &invitedID,
		Confirmed: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.invitationRepository.CreateInvitation(invitation); err != nil {
		return nil, err
	}

	confirmationLink := fmt.Sprintf("%s/invitations/%s/confirm", config.GetEnv().AppURL, invitation.ID)
	s.dispatcher.Dispatch(notifications.EmailEvent(
		invited.Email,
		fmt.Sprintf("You were invited to project %s", project.Name),
		fmt.Sprintf(
			"Hi %s! %s invited you to join the project %q. Follow the link to confirm: %s",
			invited.Fullname, inviter.Fullname, project.Name, confirmationLink,
		),
	))

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User %s invited to project", invited.Email),
		&inviter.ID,
		&projectID,
	)

	return invitationToDTO(invitation), nil
}

func (s *InvitationService) resolveInvitedUser(request *projects_dto.InviteMemberRequestDTO) (*users_models.User, error) {
	if request.InvitedID != nil {
		user, err := s.userService.GetUserByID(*request.InvitedID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, apperrors.NotFound("invited user does not exist")
		}
		return user, nil
	}

	if request.Email == "" {
		return nil, apperrors.InvalidArgument("either userId or email is required")
	}

	user, err := s.userService.GetUserByEmail(request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("invited user does not exist")
	}

	return user, nil
}

// Confirm marks the invitation accepted and grants the chosen role in one
// transaction. Confirming an already confirmed invitation is a no-op and
// returns the current membership view.
func (s *InvitationService) Confirm(user *users_models.User, invitationID uuid.UUID, roleID roles.RoleID) (*projects_dto.GetMembersResponseDTO, error) {
	if !roleID.IsValid() {
		return nil, apperrors.InvalidArgument("invalid role")
	}

	invitation, err := s.invitationRepository.GetInvitationByID(invitationID)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, apperrors.NotFound("invitation does not exist")
	}

	if invitation.InvitedID == nil || *invitation.InvitedID != user.ID {
		return nil, apperrors.Forbidden("this invitation belongs to another user")
	}

	if !invitation.Confirmed {
		err = storage.Transaction(func(tx *gorm.DB) error {
			if err := s.invitationRepository.ConfirmInvitation(tx, invitation.ID); err != nil {
				return err
			}

			return s.userRoleRepository.CreateUserRole(tx, &projects_models.UserRole{
				ID:        uuid.New(),
				UserID:    user.ID,
				ProjectID: invitation.ProjectID,
				RoleID:    roleID,
				CreatedAt: time.Now().UTC(),
			})
		})
		if err != nil {
			return nil, err
		}

		s.auditLogWriter.WriteAuditLog(
			fmt.Sprintf("User %s joined the project", user.Email),
			&user.ID,
			&invitation.ProjectID,
		)
	}

	members, err := s.userRoleRepository.GetProjectMembers(invitation.ProjectID)
	if err != nil {
		return nil, err
	}

	return &projects_dto.GetMembersResponseDTO{Members: members}, nil
}

// Leave removes the user's membership: both the confirmed invitations and the
// role grant go away in one transaction. The creator cannot leave their own
// project.
func (s *InvitationService) Leave(user *users_models.User, projectID uuid.UUID) error {
	project, err := s.projectRepository.GetProjectByID(projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apperrors.NotFound("project does not exist")
	}

	if project.CreatorID == user.ID {
		return apperrors.Forbidden("the project creator cannot leave the project")
	}

	invitation, err := s.invitationRepository.GetConfirmedInvitation(projectID, user.ID)
	if err != nil {
		return err
	}
	if invitation == nil {
		return apperrors.NotFound("no confirmed invitation for this project")
	}

	err = storage.Transaction(func(tx *gorm.DB) error {
		if err := s.invitationRepository.DeleteInvitationsForMember(tx, projectID, user.ID); err != nil {
			return err
		}

		return s.userRoleRepository.DeleteUserRole(tx, projectID, user.ID)
	})
	if err != nil {
		return err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User %s left the project", user.Email),
		&user.ID,
		&projectID,
	)

	return nil
}

func invitationToDTO(invitation *projects_models.InvitationToProject) *projects_dto.InvitationResponseDTO {
	return &projects_dto.InvitationResponseDTO{
		ID:        invitation.ID,
		ProjectID: invitation.ProjectID,
		InvitedID: invitation.InvitedID,
		Confirmed: invitation.Confirmed,
		CreatedAt: invitation.CreatedAt,
	}
}
