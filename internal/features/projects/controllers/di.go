package projects_controllers

import (
	projects_services "agilcurn/internal/features/projects/services"
)

var projectController = &ProjectController{
	projectService: projects_services.GetProjectService(),
}

var invitationController = &InvitationController{
	invitationService: projects_services.GetInvitationService(),
}

func GetProjectController() *ProjectController {
	return projectController
}

func GetInvitationController() *InvitationController {
	return invitationController
}
