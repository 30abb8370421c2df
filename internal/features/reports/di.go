package reports

import (
	projects_services "agilcurn/internal/features/projects/services"
	"agilcurn/internal/features/tasks"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/notifications"
	"agilcurn/internal/util/logger"
)

var reportService = &ReportService{
	taskRepository:    &tasks.TaskRepository{},
	projectService:    projects_services.GetProjectService(),
	membershipService: projects_services.GetMembershipService(),
	userService:       users_services.GetUserService(),
	dispatcher:        notifications.GetDispatcher(),
	logger:            logger.GetLogger(),
}

var reportController = &ReportController{
	reportService: reportService,
}

var reportBackgroundService = &ReportBackgroundService{
	reportService:  reportService,
	projectService: projects_services.GetProjectService(),
	logger:         logger.GetLogger(),
}

func GetReportService() *ReportService {
	return reportService
}

func GetReportController() *ReportController {
	return reportController
}

func GetReportBackgroundService() *ReportBackgroundService {
	return reportBackgroundService
}
