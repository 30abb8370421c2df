package audit_logs

import (
	projects_services "agilcurn/internal/features/projects/services"
	"agilcurn/internal/features/tasks"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/util/logger"
)

var auditLogRepository = &AuditLogRepository{}
var auditLogService = &AuditLogService{
	auditLogRepository: auditLogRepository,
	projectService:     projects_services.GetProjectService(),
	membershipService:  projects_services.GetMembershipService(),
	logger:             logger.GetLogger(),
}
var auditLogController = &AuditLogController{
	auditLogService: auditLogService,
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}

func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
	projects_services.GetProjectService().SetAuditLogWriter(auditLogService)
	projects_services.GetInvitationService().SetAuditLogWriter(auditLogService)
	tasks.GetTaskService().SetAuditLogWriter(auditLogService)
	tasks.GetSprintService().SetAuditLogWriter(auditLogService)
}
