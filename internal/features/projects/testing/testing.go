package projects_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"agilcurn/internal/features/audit_logs"
	projects_dto "agilcurn/internal/features/projects/dto"
	projects_models "agilcurn/internal/features/projects/models"
	"agilcurn/internal/features/roles"
	"agilcurn/internal/features/tasks"
	users_dto "agilcurn/internal/features/users/dto"
	users_middleware "agilcurn/internal/features/users/middleware"
	users_services "agilcurn/internal/features/users/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("").Use(users_middleware.AuthMiddleware(users_services.GetUserService()))

	for _, controller := range controllers {
		controller.RegisterProtectedRoutes(protected)
	}

	audit_logs.SetupDependencies()
	tasks.SetupDependencies()

	return router
}

func CreateTestProject(name string, owner *users_dto.SignInResponseDTO, router *gin.Engine) *projects_models.Project {
	now := time.Now().UTC()
	return CreateTestProjectWithDates(name, now, now.AddDate(0, 1, 0), owner, router)
}

func CreateTestProjectWithDates(
	name string,
	startDate time.Time,
	endDate time.Time,
	owner *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *projects_models.Project {
	request := projects_dto.CreateProjectRequestDTO{
		Name:      name,
		StartDate: startDate,
		EndDate:   endDate,
	}

	w := MakeAPIRequest(router, "POST", "/api/v1/projects", "Bearer "+owner.Token, request)
	if w.Code != http.StatusOK {
		panic(fmt.Sprintf("Failed to create project. Status: %d, Body: %s", w.Code, w.Body.String()))
	}

	var response projects_dto.ProjectResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &projects_models.Project{
		ID:        response.ID,
		Name:      response.Name,
		CreatorID: response.CreatorID,
		StartDate: response.StartDate,
		EndDate:   response.EndDate,
	}
}

// AddMemberToProject runs the full join flow: the owner invites the member,
// the member confirms with the given role.
func AddMemberToProject(
	project *projects_models.Project,
	member *users_dto.SignInResponseDTO,
	roleID roles.RoleID,
	ownerToken string,
	router *gin.Engine,
) {
	invitation := InviteMemberToProject(project, member.UserID, roleID, ownerToken, router)
	ConfirmInvitation(invitation.ID, roleID, member.Token, router)
}

func InviteMemberToProject(
	project *projects_models.Project,
	invitedID uuid.UUID,
	roleID roles.RoleID,
	inviterToken string,
	router *gin.Engine,
) *projects_dto.InvitationResponseDTO {
	request := projects_dto.InviteMemberRequestDTO{
		RoleID:    roleID,
		InvitedID: &invitedID,
	}

	w := MakeAPIRequest(
		router,
		"POST",
		"/api/v1/projects/"+project.ID.String()+"/invitations",
		"Bearer "+inviterToken,
		request,
	)
	if w.Code != http.StatusOK {
		panic("Failed to invite member to project via API: " + w.Body.String())
	}

	var response projects_dto.InvitationResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func ConfirmInvitation(
	invitationID uuid.UUID,
	roleID roles.RoleID,
	inviteeToken string,
	router *gin.Engine,
) *projects_dto.GetMembersResponseDTO {
	request := projects_dto.ConfirmInvitationRequestDTO{RoleID: roleID}

	w := MakeAPIRequest(
		router,
		"POST",
		"/api/v1/invitations/"+invitationID.String()+"/confirm",
		"Bearer "+inviteeToken,
		request,
	)
	if w.Code != http.StatusOK {
		panic("Failed to confirm invitation via API: " + w.Body.String())
	}

	var response projects_dto.GetMembersResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func GetProjectMembers(
	project *projects_models.Project,
	requesterToken string,
	router *gin.Engine,
) *projects_dto.GetMembersResponseDTO {
	w := MakeAPIRequest(
		router,
		"GET",
		"/api/v1/projects/"+project.ID.String()+"/members",
		"Bearer "+requesterToken,
		nil,
	)
	if w.Code != http.StatusOK {
		panic("Failed to get project members via API: " + w.Body.String())
	}

	var response projects_dto.GetMembersResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &response
}

func DeleteProject(project *projects_models.Project, deleterToken string, router *gin.Engine) {
	w := MakeAPIRequest(
		router,
		"DELETE",
		"/api/v1/projects/"+project.ID.String(),
		"Bearer "+deleterToken,
		nil,
	)
	if w.Code != http.StatusOK {
		panic("Failed to delete project via API: " + w.Body.String())
	}
}

func MakeAPIRequest(router *gin.Engine, method, url, authToken string, body any) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
