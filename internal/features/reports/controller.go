package reports

import (
	"net/http"

	users_middleware "agilcurn/internal/features/users/middleware"
	"agilcurn/internal/util/apperrors"
	time_utils "agilcurn/internal/util/time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportController struct {
	reportService *ReportService
}

func (c *ReportController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.GET("/reports/status", c.GetAllProjectStatuses)
	router.GET("/reports/bottlenecks", c.DetectAllBottlenecks)
	router.GET("/projects/:projectId/reports/status", c.GetProjectStatus)
	router.GET("/projects/:projectId/reports/productivity", c.GetTeamProductivity)
	router.GET("/projects/:projectId/reports/bottlenecks", c.DetectBottlenecks)
}

// GetAllProjectStatuses
// @Summary Progress report for every project of the caller
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListProjectStatusesResponseDTO
// @Router /reports/status [get]
func (c *ReportController) GetAllProjectStatuses(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	report, err := c.reportService.GetAllProjectStatuses(user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// DetectAllBottlenecks
// @Summary Stalled tasks across every project of the caller
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListBottlenecksResponseDTO
// @Router /reports/bottlenecks [get]
func (c *ReportController) DetectAllBottlenecks(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	report, err := c.reportService.DetectAllBottlenecks(user)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// GetProjectStatus
// @Summary Project progress report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} ProjectStatusReportDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/reports/status [get]
func (c *ReportController) GetProjectStatus(ctx *gin.Context) {
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

	report, err := c.reportService.GetProjectStatus(user, projectID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// GetTeamProductivity
// @Summary Per-member productivity report
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Param startDate query string true "Period start (RFC3339)"
// @Param endDate query string true "Period end (RFC3339)"
// @Success 200 {object} TeamProductivityReportDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/reports/productivity [get]
func (c *ReportController) GetTeamProductivity(ctx *gin.Context) {
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

	startDate := time_utils.ParseDate(ctx.Query("startDate"))
	endDate := time_utils.ParseDate(ctx.Query("endDate"))
	if startDate.IsZero() || endDate.IsZero() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate or endDate"})
		return
	}

	report, err := c.reportService.GetTeamProductivity(user, projectID, startDate, endDate)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// DetectBottlenecks
// @Summary Stalled task report
// @Description List tasks without movement for over a week and alert the people responsible
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param projectId path string true "Project ID"
// @Success 200 {object} BottleneckReportDTO
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /projects/{projectId}/reports/bottlenecks [get]
func (c *ReportController) DetectBottlenecks(ctx *gin.Context) {
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

	report, err := c.reportService.DetectBottlenecks(user, projectID)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}
