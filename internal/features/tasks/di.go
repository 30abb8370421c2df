package tasks

import (
	projects_services "agilcurn/internal/features/projects/services"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/notifications"
	"agilcurn/internal/util/logger"
)

var taskRepository = &TaskRepository{}
var sprintRepository = &SprintRepository{}

var taskService = &TaskService{
	taskRepository:    taskRepository,
	sprintRepository:  sprintRepository,
	projectService:    projects_services.GetProjectService(),
	membershipService: projects_services.GetMembershipService(),
	userService:       users_services.GetUserService(),
	dispatcher:        notifications.GetDispatcher(),
	logger:            logger.GetLogger(),
}

var sprintService = &SprintService{
	sprintRepository:  sprintRepository,
	taskRepository:    taskRepository,
	projectService:    projects_services.GetProjectService(),
	membershipService: projects_services.GetMembershipService(),
	logger:            logger.GetLogger(),
}

var taskController = &TaskController{taskService: taskService}
var sprintController = &SprintController{sprintService: sprintService}

func GetTaskService() *TaskService {
	return taskService
}

func GetSprintService() *SprintService {
	return sprintService
}

func GetTaskController() *TaskController {
	return taskController
}

func GetSprintController() *SprintController {
	return sprintController
}

// SetupDependencies plugs sprints and tasks into project date updates and
// project deletion.
func SetupDependencies() {
	coordinator := &projectCoordinator{
		sprintRepository: sprintRepository,
		taskRepository:   taskRepository,
	}

	projects_services.GetProjectService().SetSprintCoordinator(coordinator)
	projects_services.GetProjectService().AddProjectDeletionListener(coordinator)
}
