package tasks_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	projects_controllers "agilcurn/internal/features/projects/controllers"
	projects_testing "agilcurn/internal/features/projects/testing"
	"agilcurn/internal/features/roles"
	"agilcurn/internal/features/tasks"
	users_testing "agilcurn/internal/features/users/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateTask_AsDeveloperWithAssignee_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Dev limits project", owner, router)
	projects_testing.AddMemberToProject(project, developer, roles.RoleDeveloper, owner.Token, router)

	request := tasks.CreateTaskRequestDTO{
		Title:      "Assigned task",
		AssigneeID: &owner.UserID,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/tasks", "Bearer "+developer.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_CreateTask_AsDeveloperWithoutAssignee_StartsInTodo(t *testing.T) {
	owner := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Dev task project", owner, router)
	projects_testing.AddMemberToProject(project, developer, roles.RoleDeveloper, owner.Token, router)

	task := createTask(t, router, project.ID.String(), developer.Token, "My own task")

	assert.Equal(t, tasks.TaskStatusTodo, task.Status)
	assert.Equal(t, developer.UserID, task.CreatorID)
	assert.Nil(t, task.SprintID)
}

func Test_CreateTask_IntoClosedSprint_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	now := time.Now().UTC()
	project := projects_testing.CreateTestProjectWithDates(
		"Late planning project", now.AddDate(0, 0, -30), now.AddDate(0, 0, 30), owner, router)

	sprint := createSprint(t, router, project.ID.String(), owner.Token,
		"Past sprint", now.AddDate(0, 0, -10), now.AddDate(0, 0, -1))

	request := tasks.CreateTaskRequestDTO{
		Title:    "Too late task",
		SprintID: &sprint.ID,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/tasks", "Bearer "+owner.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "closed sprint")
}

func Test_CreateTask_WithUnknownAssignee_ReturnsNotFound(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Ghost assignee project", owner, router)

	ghost := uuid.New()
	request := tasks.CreateTaskRequestDTO{
		Title:      "Orphan task",
		AssigneeID: &ghost,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/tasks", "Bearer "+owner.Token, request)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_CreateTask_WithAssignee_RecordsAssignee(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Assignment project", owner, router)
	projects_testing.AddMemberToProject(project, member, roles.RoleDeveloper, owner.Token, router)

	request := tasks.CreateTaskRequestDTO{
		Title:      "Handed over task",
		AssigneeID: &member.UserID,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/tasks", "Bearer "+owner.Token, request)
	require.Equal(t, http.StatusOK, w.Code)

	var task tasks.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.NotNil(t, task.AssigneeID)
	assert.Equal(t, member.UserID, *task.AssigneeID)
}

func Test_ListUserTasks_IncludesOtherMembersTasks(t *testing.T) {
	owner := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Shared backlog project", owner, router)
	projects_testing.AddMemberToProject(project, developer, roles.RoleDeveloper, owner.Token, router)

	// unassigned task by another member still shows up in the owner's list
	task := createTask(t, router, project.ID.String(), developer.Token, "Developer task")

	w := projects_testing.MakeAPIRequest(router, "GET", "/api/v1/tasks/me", "Bearer "+owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response tasks.ListTasksResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	found := false
	for _, userTask := range response.Tasks {
		if userTask.ID == task.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func Test_UpdateTaskStatus_AsDeveloperOnOthersTask_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Role matrix project", owner, router)
	projects_testing.AddMemberToProject(project, developer, roles.RoleDeveloper, owner.Token, router)

	task := createTask(t, router, project.ID.String(), owner.Token, "Owner task")

	request := tasks.UpdateTaskStatusRequestDTO{Status: tasks.TaskStatusInProgress}
	w := projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/tasks/"+task.ID.String()+"/status", "Bearer "+developer.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_UpdateTaskStatus_AsScrumMasterOnAnyTask_Succeeds(t *testing.T) {
	owner := users_testing.CreateTestUser()
	scrumMaster := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("SM powers project", owner, router)
	projects_testing.AddMemberToProject(project, scrumMaster, roles.RoleScrumMaster, owner.Token, router)

	task := createTask(t, router, project.ID.String(), owner.Token, "Any task")

	request := tasks.UpdateTaskStatusRequestDTO{Status: tasks.TaskStatusDone}
	w := projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/tasks/"+task.ID.String()+"/status", "Bearer "+scrumMaster.Token, request)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated tasks.Task
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, tasks.TaskStatusDone, updated.Status)
}

func Test_UpdateTaskStatus_FromDoneBackToTodo_Succeeds(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Reopen project", owner, router)
	task := createTask(t, router, project.ID.String(), owner.Token, "Reopened task")

	updateStatus(t, router, task.ID.String(), owner.Token, tasks.TaskStatusDone, http.StatusOK)
	updateStatus(t, router, task.ID.String(), owner.Token, tasks.TaskStatusTodo, http.StatusOK)
}

func Test_UpdateTaskStatus_InClosedSprint_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	now := time.Now().UTC()
	project := projects_testing.CreateTestProjectWithDates(
		"Closed sprint project", now.AddDate(0, 0, -30), now.AddDate(0, 0, 30), owner, router)

	sprint := createSprint(t, router, project.ID.String(), owner.Token,
		"Finished sprint", now.AddDate(0, 0, -10), now.AddDate(0, 0, -1))

	task := createTask(t, router, project.ID.String(), owner.Token, "Frozen task")

	assignRequest := tasks.AssignSprintRequestDTO{SprintID: sprint.ID}
	w := projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/tasks/"+task.ID.String()+"/sprint", "Bearer "+owner.Token, assignRequest)
	assert.Equal(t, http.StatusOK, w.Code)

	updateStatus(t, router, task.ID.String(), owner.Token, tasks.TaskStatusInProgress, http.StatusForbidden)
}

func Test_DeleteTask_AsProductOwner_DeletesAnyTask(t *testing.T) {
	owner := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("PO delete project", owner, router)
	projects_testing.AddMemberToProject(project, developer, roles.RoleDeveloper, owner.Token, router)

	task := createTask(t, router, project.ID.String(), developer.Token, "Developer task")

	w := projects_testing.MakeAPIRequest(
		router, "DELETE", "/api/v1/tasks/"+task.ID.String(), "Bearer "+owner.Token, nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_DeleteTask_AsScrumMasterOnOthersTask_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	scrumMaster := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("SM delete project", owner, router)
	projects_testing.AddMemberToProject(project, scrumMaster, roles.RoleScrumMaster, owner.Token, router)

	task := createTask(t, router, project.ID.String(), owner.Token, "Protected task")

	w := projects_testing.MakeAPIRequest(
		router, "DELETE", "/api/v1/tasks/"+task.ID.String(), "Bearer "+scrumMaster.Token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_CreateSprint_EndingAfterProject_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	now := time.Now().UTC()
	project := projects_testing.CreateTestProjectWithDates(
		"Short project", now, now.AddDate(0, 0, 14), owner, router)

	request := tasks.CreateSprintRequestDTO{
		SprintName: "Overlong sprint",
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, 30),
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/sprints", "Bearer "+owner.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_CreateSprint_AsDeveloper_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	developer := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("No dev sprints project", owner, router)
	projects_testing.AddMemberToProject(project, developer, roles.RoleDeveloper, owner.Token, router)

	now := time.Now().UTC()
	request := tasks.CreateSprintRequestDTO{
		SprintName: "Developer sprint",
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, 14),
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/sprints", "Bearer "+developer.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_AssignToSprint_DoesNotResetTaskAge(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	now := time.Now().UTC()
	project := projects_testing.CreateTestProjectWithDates(
		"Planning project", now.AddDate(0, 0, -30), now.AddDate(0, 1, 0), owner, router)

	sprint := createSprint(t, router, project.ID.String(), owner.Token,
		"Planning sprint", now, now.AddDate(0, 0, 14))
	task := createTask(t, router, project.ID.String(), owner.Token, "Aged task")

	backdateTask(t, task.ID, 8)

	assignRequest := tasks.AssignSprintRequestDTO{SprintID: sprint.ID}
	w := projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/tasks/"+task.ID.String()+"/sprint", "Bearer "+owner.Token, assignRequest)
	require.Equal(t, http.StatusOK, w.Code)

	var moved tasks.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &moved))

	// sprint planning is not progress, the task keeps ageing
	assert.True(t, moved.UpdatedAt.Before(now.AddDate(0, 0, -7)))
}

func Test_DeleteSprint_PreservesTasks(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	now := time.Now().UTC()
	project := projects_testing.CreateTestProjectWithDates(
		"Backlog project", now, now.AddDate(0, 1, 0), owner, router)

	sprint := createSprint(t, router, project.ID.String(), owner.Token,
		"Disposable sprint", now, now.AddDate(0, 0, 14))
	task := createTask(t, router, project.ID.String(), owner.Token, "Surviving task")

	assignRequest := tasks.AssignSprintRequestDTO{SprintID: sprint.ID}
	w := projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/tasks/"+task.ID.String()+"/sprint", "Bearer "+owner.Token, assignRequest)
	assert.Equal(t, http.StatusOK, w.Code)

	w = projects_testing.MakeAPIRequest(
		router, "DELETE", "/api/v1/sprints/"+sprint.ID.String(), "Bearer "+owner.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// task fell back to the backlog
	w = projects_testing.MakeAPIRequest(
		router, "GET", "/api/v1/projects/"+project.ID.String()+"/tasks", "Bearer "+owner.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response tasks.ListTasksResponseDTO
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	found := false
	for _, projectTask := range response.Tasks {
		if projectTask.ID == task.ID {
			found = true
			assert.Nil(t, projectTask.SprintID)
		}
	}
	assert.True(t, found)
}

func createRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetInvitationController(),
		tasks.GetTaskController(),
		tasks.GetSprintController(),
	)
}

func createTask(t *testing.T, router *gin.Engine, projectID, token, title string) *tasks.Task {
	request := tasks.CreateTaskRequestDTO{Title: title}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+projectID+"/tasks", "Bearer "+token, request)
	assert.Equal(t, http.StatusOK, w.Code)

	var task tasks.Task
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	return &task
}

func createSprint(
	t *testing.T,
	router *gin.Engine,
	projectID, token, name string,
	startDate, endDate time.Time,
) *tasks.Sprint {
	request := tasks.CreateSprintRequestDTO{
		SprintName: name,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+projectID+"/sprints", "Bearer "+token, request)
	assert.Equal(t, http.StatusOK, w.Code)

	var sprint tasks.Sprint
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &sprint))

	return &sprint
}

func backdateTask(t *testing.T, taskID uuid.UUID, days int) {
	taskRepository := &tasks.TaskRepository{}

	task, err := taskRepository.GetTaskByID(taskID)
	require.NoError(t, err)
	require.NotNil(t, task)

	task.UpdatedAt = time.Now().UTC().AddDate(0, 0, -days)
	require.NoError(t, taskRepository.UpdateTask(task))
}

func updateStatus(
	t *testing.T,
	router *gin.Engine,
	taskID, token string,
	status tasks.TaskStatus,
	expectedCode int,
) {
	request := tasks.UpdateTaskStatusRequestDTO{Status: status}

	w := projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/tasks/"+taskID+"/status", "Bearer "+token, request)
	assert.Equal(t, expectedCode, w.Code)
}
