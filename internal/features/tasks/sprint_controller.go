package tasks

import (
	"net/http"

	users_middleware "agilcurn/internal/features/users/middleware"
	"agilcurn/internal/util/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SprintController struct {
	sprintService *SprintService
}

func (c *SprintController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.POST("/projects/:projectId/sprints", c.CreateSprint)
	router.GET("/projects/:projectId/sprints", c.ListProjectSprints)
	router.DELETE("/sprints/:sprintId", c.DeleteSprint)
}

// CreateSprint
// @Summary Create a sprint
// @Description Create a sprint inside the project window
// @Tags sprints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param request body CreateSprintRequestDTO true "Sprint data"
// @Success 200 {object} Sprint
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/sprints [post]
func (c *SprintController) CreateSprint(ctx *gin.Context) {
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

	var request CreateSprintRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	sprint, err := c.sprintService.CreateSprint(user, projectID, &request)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

// ListProjectSprints
// @Summary List sprints of a project
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} ListSprintsResponseDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/sprints [get]
func (c *SprintController) ListProjectSprints(ctx *gin.Context) {
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

	response, err := c.sprintService.ListProjectSprints(user, projectID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteSprint
// @Summary Delete a sprint
// @Description Delete a sprint; its tasks go back to the backlog
// @Tags sprints
// @Produce json
// @Security BearerAuth
// @Param sprintId path string true "Sprint ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sprints/{sprintId} [delete]
func (c *SprintController) DeleteSprint(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	sprintID, err := uuid.Parse(ctx.Param("sprintId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint ID"})
		return
	}

	if err := c.sprintService.DeleteSprint(user, sprintID); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sprint deleted successfully"})
}
