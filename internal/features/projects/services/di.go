package projects_services

import (
	"agilcurn/internal/cache"
	projects_models "agilcurn/internal/features/projects/models"
	projects_repositories "agilcurn/internal/features/projects/repositories"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/notifications"
	cache_utils "agilcurn/internal/util/cache"
	"agilcurn/internal/util/logger"
	"agilcurn/internal/util/rate_limit"
)

var projectRepository = &projects_repositories.ProjectRepository{}
var invitationRepository = &projects_repositories.InvitationRepository{}
var userRoleRepository = &projects_repositories.UserRoleRepository{}

var membershipService = &MembershipService{
	projectRepository:    projectRepository,
	invitationRepository: invitationRepository,
	userRoleRepository:   userRoleRepository,
}

var projectService = &ProjectService{
	projectRepository:    projectRepository,
	invitationRepository: invitationRepository,
	userRoleRepository:   userRoleRepository,
	membershipService:    membershipService,
	projectCache:         cache_utils.NewCacheUtil[projects_models.Project](cache.GetCache(), "project:"),
	logger:               logger.GetLogger(),
}

var invitationService = &InvitationService{
	projectRepository:    projectRepository,
	invitationRepository: invitationRepository,
	userRoleRepository:   userRoleRepository,
	membershipService:    membershipService,
	projectService:       projectService,
	userService:          users_services.GetUserService(),
	dispatcher:           notifications.GetDispatcher(),
	rateLimiter:          rate_limit.NewRateLimiter(),
	logger:               logger.GetLogger(),
}

func GetMembershipService() *MembershipService {
	return membershipService
}

func GetProjectService() *ProjectService {
	return projectService
}

func GetInvitationService() *InvitationService {
	return invitationService
}
