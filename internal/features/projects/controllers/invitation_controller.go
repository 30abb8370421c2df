package projects_controllers

import (
	"net/http"

	projects_dto "agilcurn/internal/features/projects/dto"
	projects_services "agilcurn/internal/features/projects/services"
	users_middleware "agilcurn/internal/features/users/middleware"
	"agilcurn/internal/util/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvitationController struct {
	invitationService *projects_services.InvitationService
}

func (c *InvitationController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.POST("/projects/:projectId/invitations", c.Invite)
	router.POST("/projects/:projectId/leave", c.Leave)
	router.POST("/invitations/:invitationId/confirm", c.Confirm)
}

// Invite
// @Summary Invite a user to a project
// @Description Create a pending invitation and email the invitee a confirmation link
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body projects_dto.InviteMemberRequestDTO true "Invitee and role"
// @Success 200 {object} projects_dto.InvitationResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /projects/{projectId}/invitations [post]
func (c *InvitationController) Invite(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var request projects_dto.InviteMemberRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.invitationService.Invite(user, projectID, &request)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Confirm
// @Summary Confirm an invitation
// @Description Accept an invitation with a chosen role; repeated confirmation is a no-op
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param invitationId path string true "Invitation ID"
// @Param request body projects_dto.ConfirmInvitationRequestDTO true "Chosen role"
// @Success 200 {object} projects_dto.GetMembersResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invitations/{invitationId}/confirm [post]
func (c *InvitationController) Confirm(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	invitationID, err := uuid.Parse(ctx.Param("invitationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invitation ID"})
		return
	}

	var request projects_dto.ConfirmInvitationRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.invitationService.Confirm(user, invitationID, request.RoleID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Leave
// @Summary Leave a project
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/leave [post]
func (c *InvitationController) Leave(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := uuid.Parse(ctx.Param("projectId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	if err := c.invitationService.Leave(user, projectID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "You left the project"})
}
