package users_controllers

import (
	"net/http"

	users_dto "agilcurn/internal/features/users/dto"
	users_middleware "agilcurn/internal/features/users/middleware"
	users_services "agilcurn/internal/features/users/services"
	"agilcurn/internal/util/apperrors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService *users_services.UserService
}

func (c *UserController) RegisterRoutes(router *gin.RouterGroup) {
	userRoutes := router.Group("/users")

	userRoutes.POST("/signup", c.SignUp)
	userRoutes.POST("/signin", c.SignIn)
}

func (c *UserController) RegisterProtectedRoutes(router gin.IRoutes) {
	router.GET("/users", c.ListUsers)
	router.GET("/users/me", c.GetProfile)
	router.POST("/users/me/push-token", c.RegisterPushToken)
}

// SignUp
// @Summary Register a new user
// @Description Create a user account and send a welcome email
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignUpRequestDTO true "Registration data"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users/signup [post]
func (c *UserController) SignUp(ctx *gin.Context) {
	var request users_dto.SignUpRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.userService.SignUp(&request); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
}

// SignIn
// @Summary Sign in
// @Description Exchange credentials for an access token
// @Tags users
// @Accept json
// @Produce json
// @Param request body users_dto.SignInRequestDTO true "Credentials"
// @Success 200 {object} users_dto.SignInResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /users/signin [post]
func (c *UserController) SignIn(ctx *gin.Context) {
	var request users_dto.SignInRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.userService.SignIn(&request)
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListUsers
// @Summary List users
// @Description User directory for assignee and invitation pickers
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.ListUsersResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	response, err := c.userService.GetUsers()
	if err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProfile
// @Summary Current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users_dto.UserProfileResponseDTO
// @Failure 401 {object} map[string]string
// @Router /users/me [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Fullname:  user.Fullname,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// RegisterPushToken
// @Summary Register an Expo push token for the current user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.RegisterPushTokenRequestDTO true "Push token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /users/me/push-token [post]
func (c *UserController) RegisterPushToken(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request users_dto.RegisterPushTokenRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.userService.RegisterPushToken(user.ID, request.ExpoPushToken); err != nil {
		apperrors.Respond(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Push token registered successfully"})
}
