package projects_controllers

import (
	"net/http"
	"testing"

	projects_dto "agilcurn/internal/features/projects/dto"
	projects_testing "agilcurn/internal/features/projects/testing"
	"agilcurn/internal/features/roles"
	users_testing "agilcurn/internal/features/users/testing"

	"github.com/stretchr/testify/assert"
)

func Test_InviteMember_WhenAlreadyConfirmed_ReturnsConflict(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Conflict project", owner, router)
	projects_testing.AddMemberToProject(project, member, roles.RoleDeveloper, owner.Token, router)

	request := projects_dto.InviteMemberRequestDTO{
		RoleID:    roles.RoleDeveloper,
		InvitedID: &member.UserID,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/invitations", "Bearer "+owner.Token, request)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already a member")
}

func Test_InviteMember_InvitingCreator_ReturnsConflict(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Self invite project", owner, router)

	request := projects_dto.InviteMemberRequestDTO{
		RoleID:    roles.RoleDeveloper,
		InvitedID: &owner.UserID,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/invitations", "Bearer "+owner.Token, request)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "creator")
}

func Test_InviteMember_AsNonMember_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	invited := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Closed project", owner, router)

	request := projects_dto.InviteMemberRequestDTO{
		RoleID:    roles.RoleDeveloper,
		InvitedID: &invited.UserID,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/invitations", "Bearer "+outsider.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_InviteMember_WithUnknownRole_ReturnsBadRequest(t *testing.T) {
	owner := users_testing.CreateTestUser()
	invited := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Bad role project", owner, router)

	request := projects_dto.InviteMemberRequestDTO{
		RoleID:    roles.RoleID(42),
		InvitedID: &invited.UserID,
	}

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/invitations", "Bearer "+owner.Token, request)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func Test_ConfirmInvitation_Twice_IsIdempotent(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Idempotent project", owner, router)
	invitation := projects_testing.InviteMemberToProject(project, member.UserID, roles.RoleDeveloper, owner.Token, router)

	first := projects_testing.ConfirmInvitation(invitation.ID, roles.RoleDeveloper, member.Token, router)
	second := projects_testing.ConfirmInvitation(invitation.ID, roles.RoleDeveloper, member.Token, router)

	assert.Equal(t, len(first.Members), len(second.Members))
	assert.Equal(t, 2, len(second.Members))

	memberRows := 0
	for _, m := range second.Members {
		if m.UserID == member.UserID {
			memberRows++
			assert.Equal(t, roles.RoleDeveloper, m.RoleID)
		}
	}
	assert.Equal(t, 1, memberRows)
}

func Test_ConfirmInvitation_ByAnotherUser_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	impostor := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Guarded project", owner, router)
	invitation := projects_testing.InviteMemberToProject(project, member.UserID, roles.RoleDeveloper, owner.Token, router)

	request := projects_dto.ConfirmInvitationRequestDTO{RoleID: roles.RoleDeveloper}
	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/invitations/"+invitation.ID.String()+"/confirm", "Bearer "+impostor.Token, request)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_LeaveProject_RemovesMembership(t *testing.T) {
	owner := users_testing.CreateTestUser()
	member := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Leavable project", owner, router)
	projects_testing.AddMemberToProject(project, member, roles.RoleDeveloper, owner.Token, router)

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/leave", "Bearer "+member.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// no longer a member
	w = projects_testing.MakeAPIRequest(
		router, "GET", "/api/v1/projects/"+project.ID.String(), "Bearer "+member.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	members := projects_testing.GetProjectMembers(project, owner.Token, router)
	assert.Equal(t, 1, len(members.Members))
}

func Test_LeaveProject_AsCreator_ReturnsForbidden(t *testing.T) {
	owner := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Captain stays project", owner, router)

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/leave", "Bearer "+owner.Token, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_LeaveProject_WithoutConfirmedInvitation_ReturnsNotFound(t *testing.T) {
	owner := users_testing.CreateTestUser()
	outsider := users_testing.CreateTestUser()
	router := createRouter()

	project := projects_testing.CreateTestProject("Nothing to leave project", owner, router)

	w := projects_testing.MakeAPIRequest(
		router, "POST", "/api/v1/projects/"+project.ID.String()+"/leave", "Bearer "+outsider.Token, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
