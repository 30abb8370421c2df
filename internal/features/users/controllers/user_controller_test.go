package users_controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"agilcurn/internal/features/audit_logs"
	projects_testing "agilcurn/internal/features/projects/testing"
	users_dto "agilcurn/internal/features/users/dto"
	users_middleware "agilcurn/internal/features/users/middleware"
	users_services "agilcurn/internal/features/users/services"
	users_testing "agilcurn/internal/features/users/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SignUp_ThenSignIn_ReturnsToken(t *testing.T) {
	router := createUserRouter()
	email := fmt.Sprintf("signup-%s@test.com", uuid.New().String()[:8])

	signUpRequest := users_dto.SignUpRequestDTO{
		Fullname: "Sign Up User",
		Email:    email,
		Password: "verysecret1",
	}

	w := projects_testing.MakeAPIRequest(router, "POST", "/api/v1/users/signup", "", signUpRequest)
	require.Equal(t, http.StatusOK, w.Code)

	signInRequest := users_dto.SignInRequestDTO{
		Email:    email,
		Password: "verysecret1",
	}

	w = projects_testing.MakeAPIRequest(router, "POST", "/api/v1/users/signin", "", signInRequest)
	require.Equal(t, http.StatusOK, w.Code)

	var response users_dto.SignInResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, email, response.Email)
}

func Test_SignUp_WithDuplicateEmail_ReturnsConflict(t *testing.T) {
	router := createUserRouter()
	email := fmt.Sprintf("dup-%s@test.com", uuid.New().String()[:8])

	request := users_dto.SignUpRequestDTO{
		Fullname: "First User",
		Email:    email,
		Password: "verysecret1",
	}

	w := projects_testing.MakeAPIRequest(router, "POST", "/api/v1/users/signup", "", request)
	require.Equal(t, http.StatusOK, w.Code)

	w = projects_testing.MakeAPIRequest(router, "POST", "/api/v1/users/signup", "", request)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func Test_SignIn_WithWrongPassword_ReturnsForbidden(t *testing.T) {
	router := createUserRouter()
	email := fmt.Sprintf("wrongpass-%s@test.com", uuid.New().String()[:8])

	signUpRequest := users_dto.SignUpRequestDTO{
		Fullname: "Wrong Pass User",
		Email:    email,
		Password: "verysecret1",
	}

	w := projects_testing.MakeAPIRequest(router, "POST", "/api/v1/users/signup", "", signUpRequest)
	require.Equal(t, http.StatusOK, w.Code)

	signInRequest := users_dto.SignInRequestDTO{
		Email:    email,
		Password: "notthepassword",
	}

	w = projects_testing.MakeAPIRequest(router, "POST", "/api/v1/users/signin", "", signInRequest)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_ListUsers_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserRouter()

	w := projects_testing.MakeAPIRequest(router, "GET", "/api/v1/users", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func Test_GetProfile_ReturnsCurrentUser(t *testing.T) {
	router := createUserRouter()
	user := users_testing.CreateTestUser()

	w := projects_testing.MakeAPIRequest(router, "GET", "/api/v1/users/me", "Bearer "+user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response users_dto.UserProfileResponseDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, user.UserID, response.ID)
	assert.Equal(t, user.Email, response.Email)
}

func createUserRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")

	audit_logs.SetupDependencies()

	userController := GetUserController()
	userController.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	userController.RegisterProtectedRoutes(protected)

	return router
}
