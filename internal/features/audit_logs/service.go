package audit_logs

import (
	"log/slog"
	"time"

	projects_services "agilcurn/internal/features/projects/services"
	users_models "agilcurn/internal/features/users/models"
	"agilcurn/internal/util/apperrors"

	"github.com/google/uuid"
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
	projectService     *projects_services.ProjectService
	membershipService  *projects_services.MembershipService
	logger             *slog.Logger
}

// WriteAuditLog records an audit entry. Failures are logged and swallowed so
// auditing can never break the operation being audited.
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	projectID *uuid.UUID,
) {
	auditLog := &AuditLog{
		UserID:    userID,
		ProjectID: projectID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.auditLogRepository.Create(auditLog); err != nil {
		s.logger.Error("failed to create audit log", "error", err)
	}
}

func (s *AuditLogService) GetOwnAuditLogs(
	user *users_models.User,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
	limit, offset := normalizePagination(request)

	auditLogs, err := s.auditLogRepository.GetByUser(user.ID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     int64(len(auditLogs)),
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *AuditLogService) GetProjectAuditLogs(
	user *users_models.User,
	projectID uuid.UUID,
	request *GetAuditLogsRequest,
) (*GetAuditLogsResponse, error) {
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

	limit, offset := normalizePagination(request)

	auditLogs, err := s.auditLogRepository.GetByProject(projectID, limit, offset, request.BeforeDate)
	if err != nil {
		return nil, err
	}

	return &GetAuditLogsResponse{
		AuditLogs: auditLogs,
		Total:     int64(len(auditLogs)),
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func normalizePagination(request *GetAuditLogsRequest) (int, int) {
	limit := request.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	return limit, max(request.Offset, 0)
}
