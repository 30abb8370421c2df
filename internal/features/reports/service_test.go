package reports_test

import (
	"testing"
	"time"

	projects_controllers "agilcurn/internal/features/projects/controllers"
	projects_services "agilcurn/internal/features/projects/services"
	projects_testing "agilcurn/internal/features/projects/testing"
	"agilcurn/internal/features/reports"
	"agilcurn/internal/features/roles"
	"agilcurn/internal/features/tasks"
	users_models "agilcurn/internal/features/users/models"
	users_services "agilcurn/internal/features/users/services"
	users_testing "agilcurn/internal/features/users/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetProjectStatus_WithNoTasks_ReturnsZeroProgress(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Empty project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	report, err := reports.GetReportService().GetProjectStatus(ownerUser, project.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalTasks)
	assert.Equal(t, 0.0, report.Progress)
}

func Test_GetProjectStatus_ComputesProgressPercentage(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Progress project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	taskService := tasks.GetTaskService()
	for i := 0; i < 4; i++ {
		task, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
			Title: "Progress task",
		})
		require.NoError(t, err)

		if i < 2 {
			_, err = taskService.UpdateTaskStatus(ownerUser, task.ID, tasks.TaskStatusDone)
			require.NoError(t, err)
		}
	}

	report, err := reports.GetReportService().GetProjectStatus(ownerUser, project.ID)

	require.NoError(t, err)
	assert.Equal(t, 4, report.TotalTasks)
	assert.Equal(t, 2, report.DoneTasks)
	assert.Equal(t, 50.0, report.Progress)
	assert.GreaterOrEqual(t, report.Progress, 0.0)
	assert.LessOrEqual(t, report.Progress, 100.0)
}

func Test_GetTeamProductivity_GroupsByAssigneeWithCreatorFallback(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Productivity project", owner, router)
	projects_testing.AddMemberToProject(project, member, roles.RoleDeveloper, owner.Token, router)
	ownerUser := loadUser(t, owner.UserID)

	taskService := tasks.GetTaskService()

	assigned, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title:      "Assigned task",
		AssigneeID: &member.UserID,
	})
	require.NoError(t, err)

	_, err = taskService.UpdateTaskStatus(ownerUser, assigned.ID, tasks.TaskStatusDone)
	require.NoError(t, err)

	_, err = taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Unassigned task",
	})
	require.NoError(t, err)

	now := time.Now().UTC()
	report, err := reports.GetReportService().GetTeamProductivity(
		ownerUser, project.ID, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	entries := map[uuid.UUID]int{}
	for _, entry := range report.Members {
		entries[entry.UserID] = 1

		switch entry.UserID {
		case member.UserID:
			assert.Equal(t, 1, entry.CompletedTasks)
		case owner.UserID:
			// unassigned task falls back to its creator
			assert.Equal(t, 1, entry.IncompleteTasks)
		}
	}

	assert.Contains(t, entries, member.UserID)
	assert.Contains(t, entries, owner.UserID)
}

func Test_GetAllProjectStatuses_CoversEveryMemberProject(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	first := projects_testing.CreateTestProject("First overview project", owner, router)
	second := projects_testing.CreateTestProject("Second overview project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	taskService := tasks.GetTaskService()
	task, err := taskService.CreateTask(ownerUser, first.ID, &tasks.CreateTaskRequestDTO{
		Title: "Overview task",
	})
	require.NoError(t, err)

	_, err = taskService.UpdateTaskStatus(ownerUser, task.ID, tasks.TaskStatusDone)
	require.NoError(t, err)

	response, err := reports.GetReportService().GetAllProjectStatuses(ownerUser)
	require.NoError(t, err)

	byProject := map[uuid.UUID]reports.ProjectStatusReportDTO{}
	for _, report := range response.Projects {
		byProject[report.ProjectID] = report
	}

	require.Contains(t, byProject, first.ID)
	require.Contains(t, byProject, second.ID)
	assert.Equal(t, "First overview project", byProject[first.ID].ProjectName)
	assert.Equal(t, 100.0, byProject[first.ID].Progress)
	assert.Equal(t, 0.0, byProject[second.ID].Progress)
}

func Test_GetTeamProductivity_FiltersByUpdateTime(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Update window project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	taskService := tasks.GetTaskService()

	old, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Old task",
	})
	require.NoError(t, err)
	backdateTask(t, old, 10)

	_, err = taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Current task",
	})
	require.NoError(t, err)

	// only the task last touched inside the window counts
	now := time.Now().UTC()
	report, err := reports.GetReportService().GetTeamProductivity(
		ownerUser, project.ID, now.AddDate(0, 0, -14), now.AddDate(0, 0, -7))
	require.NoError(t, err)

	require.Len(t, report.Members, 1)
	assert.Equal(t, owner.UserID, report.Members[0].UserID)
	assert.Equal(t, 1, report.Members[0].IncompleteTasks)
}

func Test_GetTeamProductivity_WithEndBeforeStart_ReturnsError(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Bad period project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	now := time.Now().UTC()
	_, err := reports.GetReportService().GetTeamProductivity(
		ownerUser, project.ID, now, now.Add(-time.Hour))

	assert.Error(t, err)
}

func Test_DetectBottlenecks_ReportsOnlyStalledTasks(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Bottleneck project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	taskService := tasks.GetTaskService()

	stalled, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Stalled task",
	})
	require.NoError(t, err)

	fresh, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Fresh task",
	})
	require.NoError(t, err)

	backdateTask(t, stalled, 8)

	report, err := reports.GetReportService().DetectBottlenecks(ownerUser, project.ID)
	require.NoError(t, err)

	ids := map[uuid.UUID]int{}
	for _, bottleneck := range report.Bottlenecks {
		ids[bottleneck.TaskID] = bottleneck.DaysStalled
	}

	assert.Contains(t, ids, stalled.ID)
	assert.Equal(t, 8, ids[stalled.ID])
	assert.NotContains(t, ids, fresh.ID)
}

func Test_DetectBottlenecks_FlagsTasksJustOverThreshold(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Threshold project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	taskService := tasks.GetTaskService()

	stalled, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Barely stalled task",
	})
	require.NoError(t, err)

	fresh, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Recent task",
	})
	require.NoError(t, err)

	// the age comparison is fractional, only the day count is floored
	backdateTaskBy(t, stalled, 7*24*time.Hour+12*time.Hour)
	backdateTaskBy(t, fresh, 6*24*time.Hour)

	report, err := reports.GetReportService().DetectBottlenecks(ownerUser, project.ID)
	require.NoError(t, err)

	ids := map[uuid.UUID]int{}
	for _, bottleneck := range report.Bottlenecks {
		ids[bottleneck.TaskID] = bottleneck.DaysStalled
	}

	require.Contains(t, ids, stalled.ID)
	assert.Equal(t, 7, ids[stalled.ID])
	assert.NotContains(t, ids, fresh.ID)
}

func Test_DetectBottlenecks_InEndedProject_StillListsStalledTasks(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	now := time.Now().UTC()
	project := projects_testing.CreateTestProjectWithDates(
		"Ended project", now.AddDate(0, 0, -60), now.AddDate(0, 0, -1), owner, router)
	ownerUser := loadUser(t, owner.UserID)

	task, err := tasks.GetTaskService().CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Leftover task",
	})
	require.NoError(t, err)

	backdateTask(t, task, 8)

	// still listed even though alerting is suppressed for ended projects
	report, err := reports.GetReportService().DetectBottlenecks(ownerUser, project.ID)
	require.NoError(t, err)

	found := false
	for _, bottleneck := range report.Bottlenecks {
		if bottleneck.TaskID == task.ID {
			found = true
		}
	}
	assert.True(t, found)

	projectModel, err := projects_services.GetProjectService().GetProjectCached(project.ID)
	require.NoError(t, err)
	require.NotNil(t, projectModel)
	require.NoError(t, reports.GetReportService().SweepProject(projectModel))
}

func Test_DetectAllBottlenecks_CarriesProjectName(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Named bottleneck project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	task, err := tasks.GetTaskService().CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Cross project task",
	})
	require.NoError(t, err)

	backdateTask(t, task, 9)

	response, err := reports.GetReportService().DetectAllBottlenecks(ownerUser)
	require.NoError(t, err)

	found := false
	for _, bottleneck := range response.Bottlenecks {
		if bottleneck.TaskID == task.ID {
			found = true
			assert.Equal(t, project.ID, bottleneck.ProjectID)
			assert.Equal(t, "Named bottleneck project", bottleneck.ProjectName)
		}
	}
	assert.True(t, found)
}

func Test_DetectBottlenecks_IgnoresDoneTasks(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Done tasks project", owner, router)
	ownerUser := loadUser(t, owner.UserID)

	taskService := tasks.GetTaskService()
	task, err := taskService.CreateTask(ownerUser, project.ID, &tasks.CreateTaskRequestDTO{
		Title: "Old but done",
	})
	require.NoError(t, err)

	_, err = taskService.UpdateTaskStatus(ownerUser, task.ID, tasks.TaskStatusDone)
	require.NoError(t, err)

	backdateTask(t, task, 30)

	report, err := reports.GetReportService().DetectBottlenecks(ownerUser, project.ID)
	require.NoError(t, err)

	for _, bottleneck := range report.Bottlenecks {
		assert.NotEqual(t, task.ID, bottleneck.TaskID)
	}
}

func createRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		projects_controllers.GetProjectController(),
		projects_controllers.GetInvitationController(),
	)
}

func loadUser(t *testing.T, userID uuid.UUID) *users_models.User {
	user, err := users_services.GetUserService().GetUserByID(userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func backdateTask(t *testing.T, task *tasks.Task, days int) {
	backdateTaskBy(t, task, time.Duration(days)*24*time.Hour)
}

func backdateTaskBy(t *testing.T, task *tasks.Task, age time.Duration) {
	taskRepository := &tasks.TaskRepository{}

	freshTask, err := taskRepository.GetTaskByID(task.ID)
	require.NoError(t, err)
	require.NotNil(t, freshTask)

	freshTask.UpdatedAt = time.Now().UTC().Add(-age)
	require.NoError(t, taskRepository.UpdateTask(freshTask))
}
