package tasks

import (
	"fmt"
	"log/slog"
	"time"

	projects_services "agilcurn/internal/features/projects/services"
	"agilcurn/internal/features/roles"
	users_interfaces "agilcurn/internal/features/users/interfaces"
	users_models "agilcurn/internal/features/users/models"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/notifications"
	"agilcurn/internal/util/apperrors"

	"github.com/google/uuid"
)

type TaskService struct {
	taskRepository    *TaskRepository
	sprintRepository  *SprintRepository
	projectService    *projects_services.ProjectService
	membershipService *projects_services.MembershipService
	userService       *users_services.UserService
	dispatcher        *notifications.Dispatcher
	logger            *slog.Logger

	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *TaskService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

// CreateTask creates a task in TODO. Developers can create tasks only for
// themselves: choosing an assignee or a sprint is reserved for the product
// owner and the scrum master.
func (s *TaskService) CreateTask(user *users_models.User, projectID uuid.UUID, request *CreateTaskRequestDTO) (*Task, error) {
	roleID, err := s.requireRole(projectID, user.ID)
	if err != nil {
		return nil, err
	}

	if !roleID.CanManageSprints() && (request.AssigneeID != nil || request.SprintID != nil) {
		return nil, apperrors.Forbidden("developers cannot set an assignee or a sprint on task creation")
	}

	if request.AssigneeID != nil {
		assignee, err := s.userService.GetUserByID(*request.AssigneeID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, apperrors.NotFound("assignee does not exist")
		}
	}

	if request.SprintID != nil {
		sprint, err := s.requireProjectSprint(projectID, *request.SprintID)
		if err != nil {
			return nil, err
		}
		if sprint.IsClosed(time.Now().UTC()) {
			return nil, apperrors.Forbidden("cannot schedule a task into a closed sprint")
		}
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       request.Title,
		Description: request.Description,
		Status:      TaskStatusTodo,
		ProjectID:   projectID,
		CreatorID:   user.ID,
		AssigneeID:  request.AssigneeID,
		SprintID:    request.SprintID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := s.taskRepository.CreateTask(task); err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Task created: %s", task.Title),
		&user.ID,
		&projectID,
	)

	if task.AssigneeID != nil {
		s.dispatchTaskAssigned(user, task)
	}

	return task, nil
}

// UpdateTaskStatus moves a task through the lifecycle. Any transition between
// the three statuses is allowed, but tasks in a closed sprint are frozen.
func (s *TaskService) UpdateTaskStatus(user *users_models.User, taskID uuid.UUID, status TaskStatus) (*Task, error) {
	if !status.IsValid() {
		return nil, apperrors.InvalidArgument("invalid task status")
	}

	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("task does not exist")
	}

	roleID, err := s.requireRole(task.ProjectID, user.ID)
	if err != nil {
		return nil, err
	}

	if task.SprintID != nil {
		sprint, err := s.sprintRepository.GetSprintByID(*task.SprintID)
		if err != nil {
			return nil, err
		}
		if sprint != nil && sprint.IsClosed(time.Now().UTC()) {
			return nil, apperrors.Forbidden("the sprint of this task is closed")
		}
	}

	if !roleID.CanManageSprints() && !task.IsOwnedBy(user.ID) {
		return nil, apperrors.Forbidden("developers can only move their own tasks")
	}

	task.Status = status
	task.UpdatedAt = time.Now().UTC()

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Task %q moved to %s", task.Title, task.Status),
		&user.ID,
		&task.ProjectID,
	)

	s.dispatchTaskUpdated(user, task)

	return task, nil
}

// DeleteTask removes a task. The product owner can delete any task; everyone
// else only tasks they created or are assigned to.
func (s *TaskService) DeleteTask(user *users_models.User, taskID uuid.UUID) error {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return apperrors.NotFound("task does not exist")
	}

	roleID, err := s.requireRole(task.ProjectID, user.ID)
	if err != nil {
		return err
	}

	if *roleID != roles.RoleProductOwner && !task.IsOwnedBy(user.ID) {
		return apperrors.Forbidden("you can only delete tasks you created or are assigned to")
	}

	if err := s.taskRepository.DeleteTask(task.ID); err != nil {
		return err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("Task deleted: %s", task.Title),
		&user.ID,
		&task.ProjectID,
	)

	return nil
}

// AssignToSprint places the task into a sprint of the same project. Only the
// product owner and the scrum master plan sprints.
func (s *TaskService) AssignToSprint(user *users_models.User, taskID uuid.UUID, sprintID uuid.UUID) (*Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("task does not exist")
	}

	roleID, err := s.requireRole(task.ProjectID, user.ID)
	if err != nil {
		return nil, err
	}
	if !roleID.CanManageSprints() {
		return nil, apperrors.Forbidden("only the product owner and the scrum master can plan sprints")
	}

	if _, err := s.requireProjectSprint(task.ProjectID, sprintID); err != nil {
		return nil, err
	}

	// UpdatedAt stays untouched: moving a task between sprints is planning,
	// not progress, and must not reset bottleneck ageing.
	task.SprintID = &sprintID

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) RemoveFromSprint(user *users_models.User, taskID uuid.UUID) (*Task, error) {
	task, err := s.taskRepository.GetTaskByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("task does not exist")
	}

	roleID, err := s.requireRole(task.ProjectID, user.ID)
	if err != nil {
		return nil, err
	}
	if !roleID.CanManageSprints() {
		return nil, apperrors.Forbidden("only the product owner and the scrum master can plan sprints")
	}

	task.SprintID = nil

	if err := s.taskRepository.UpdateTask(task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) ListProjectTasks(user *users_models.User, projectID uuid.UUID) (*ListTasksResponseDTO, error) {
	if _, err := s.requireRole(projectID, user.ID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepository.GetTasksByProject(projectID)
	if err != nil {
		return nil, err
	}

	return &ListTasksResponseDTO{Tasks: tasks}, nil
}

func (s *TaskService) ListUserTasks(user *users_models.User) (*ListTasksResponseDTO, error) {
	tasks, err := s.taskRepository.GetTasksForUser(user.ID)
	if err != nil {
		return nil, err
	}

	return &ListTasksResponseDTO{Tasks: tasks}, nil
}

// requireRole resolves the caller's role in the project, failing closed: no
// project or no role means no access.
func (s *TaskService) requireRole(projectID uuid.UUID, userID uuid.UUID) (*roles.RoleID, error) {
	project, err := s.projectService.GetProjectCached(projectID)
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
	if roleID == nil {
		return nil, apperrors.Forbidden("you are not a member of this project")
	}

	return roleID, nil
}

func (s *TaskService) requireProjectSprint(projectID uuid.UUID, sprintID uuid.UUID) (*Sprint, error) {
	sprint, err := s.sprintRepository.GetSprintByID(sprintID)
	if err != nil {
		return nil, err
	}
	if sprint == nil || sprint.ProjectID != projectID {
		return nil, apperrors.NotFound("sprint does not exist in this project")
	}

	return sprint, nil
}

// dispatchTaskAssigned pushes a best-effort "new task assigned" notice to the
// assignee. Delivery failure never affects the created task.
func (s *TaskService) dispatchTaskAssigned(actor *users_models.User, task *Task) {
	if *task.AssigneeID == actor.ID {
		return
	}

	assignee, err := s.userService.GetUserByID(*task.AssigneeID)
	if err != nil {
		s.logger.Warn("failed to load assignee for push notification", "error", err)
		return
	}
	if assignee == nil || !assignee.HasPushToken() {
		return
	}

	s.dispatcher.Dispatch(notifications.PushEvent(
		*assignee.ExpoPushToken,
		"New task assigned",
		fmt.Sprintf("%s assigned %q to you", actor.Fullname, task.Title),
		map[string]string{"taskId": task.ID.String()},
	))
}

// dispatchTaskUpdated notifies the project room and pushes to the assignee
// when someone else moved their task.
func (s *TaskService) dispatchTaskUpdated(actor *users_models.User, task *Task) {
	events := []notifications.Event{
		notifications.RealtimeEvent(notifications.ChannelTaskUpdated, task),
	}

	if task.AssigneeID != nil && *task.AssigneeID != actor.ID {
		assignee, err := s.userService.GetUserByID(*task.AssigneeID)
		if err != nil {
			s.logger.Warn("failed to load assignee for push notification", "error", err)
		} else if assignee != nil && assignee.HasPushToken() {
			events = append(events, notifications.PushEvent(
				*assignee.ExpoPushToken,
				"Task updated",
				fmt.Sprintf("%s moved %q to %s", actor.Fullname, task.Title, task.Status),
				map[string]string{"taskId": task.ID.String()},
			))
		}
	}

	s.dispatcher.Dispatch(events...)
}
