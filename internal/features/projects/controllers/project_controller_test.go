package projects_controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	projects_dto "agilcurn/internal/features/projects/dto"
	projects_testing "agilcurn/internal/features/projects/testing"
	"agilcurn/internal/features/roles"
	"agilcurn/internal/features/tasks"
	users_testing "agilcurn/internal/features/users/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateProject_WithEndBeforeStart_ReturnsBadRequest(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	now := time.Now().UTC()
	request := projects_dto.CreateProjectRequestDTO{
		Name:      "Backwards project",
		StartDate: now,
		EndDate:   now.AddDate(0, 0, -1),
	}

	w := projects_testing.MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+owner.Token, request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "end date cannot be before start date")
}

func Test_CreateProject_GrantsCreatorProductOwnerRole(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Owner role project", owner, router)
	members := projects_testing.GetProjectMembers(project, owner.Token, router)

	assert.Equal(t, 1, len(members.Members))
	assert.Equal(t, owner.UserID, members.Members[0].UserID)
	assert.Equal(t, roles.RoleProductOwner, members.Members[0].RoleID)
}

func Test_GetProject_AsNonMember_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Private project", owner, router)

	w := projects_testing.MakeAPIRequest(
		router, "GET", "/api/v1/projects/"+project.ID.String(), "Bearer "+outsider.Token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_DeleteProject_AsNonCreator_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Sticky project", owner, router)
	projects_testing.AddMemberToProject(project, member, roles.RoleScrumMaster, owner.Token, router)

	w := projects_testing.MakeAPIRequest(
		router, "DELETE", "/api/v1/projects/"+project.ID.String(), "Bearer "+member.Token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)

	// still visible for the owner
	w = projects_testing.MakeAPIRequest(
		router, "GET", "/api/v1/projects/"+project.ID.String(), "Bearer "+owner.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func Test_DeleteProject_AsCreator_RemovesProject(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Doomed project", owner, router)
	projects_testing.DeleteProject(project, owner.Token, router)

	w := projects_testing.MakeAPIRequest(
		router, "GET", "/api/v1/projects/"+project.ID.String(), "Bearer "+owner.Token, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func Test_UpdateProject_AsScrumMaster_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Locked project", owner, router)
	projects_testing.AddMemberToProject(project, member, roles.RoleScrumMaster, owner.Token, router)

	newName := "Renamed project"
	request := projects_dto.UpdateProjectRequestDTO{Name: &newName}

	w := projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/projects/"+project.ID.String(), "Bearer "+member.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_UpdateProject_ShrinkingDatesOverSprints_RequiresCorrections(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := projects_testing.CreateTestRouter(
		GetProjectController(),
		GetInvitationController(),
		tasks.GetSprintController(),
	)

	now := time.Now().UTC()
	project := projects_testing.CreateTestProjectWithDates(
		"Shrinking project", now, now.AddDate(0, 2, 0), owner, router)

	sprintRequest := tasks.CreateSprintRequestDTO{
		SprintName: "Wide sprint",
		StartDate:  now,
		EndDate:    now.AddDate(0, 1, 0),
	}
	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/sprints", "Bearer "+owner.Token, sprintRequest)
	require.Equal(t, http.StatusOK, w.Code)

	var sprint tasks.Sprint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sprint))

	// shrinking the project below the sprint without corrections is rejected
	newEnd := now.AddDate(0, 0, 14)
	update := projects_dto.UpdateProjectRequestDTO{EndDate: &newEnd}
	w = projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/projects/"+project.ID.String(), "Bearer "+owner.Token, update)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "correct them first")

	// the same shrink with a corrected sprint window goes through
	update.Sprints = []projects_dto.SprintDatesDTO{{
		ID:         sprint.ID,
		SprintName: sprint.SprintName,
		StartDate:  now,
		EndDate:    now.AddDate(0, 0, 10),
	}}
	w = projects_testing.MakeAPIRequest(
		router, "PUT", "/api/v1/projects/"+project.ID.String(), "Bearer "+owner.Token, update)
	require.Equal(t, http.StatusOK, w.Code)

	w = projects_testing.MakeAPIRequest(
		router, "GET", "/api/v1/projects/"+project.ID.String()+"/sprints", "Bearer "+owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var sprints tasks.ListSprintsResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sprints))
	require.Len(t, sprints.Sprints, 1)
	assert.WithinDuration(t, now.AddDate(0, 0, 10), sprints.Sprints[0].EndDate, time.Second)
}

func createRouter() *gin.Engine {
	return projects_testing.CreateTestRouter(
		GetProjectController(),
		GetInvitationController(),
	)
}
