package users_testing

import (
	"fmt"
	"time"

	users_dto "agilcurn/internal/features/users/dto"
	users_enums "agilcurn/internal/features/users/enums"
	users_models "agilcurn/internal/features/users/models"
	users_repositories "agilcurn/internal/features/users/repositories"
	users_services "agilcurn/internal/features/users/services"

	"github.com/google/uuid"
)

func CreateTestUser() *users_dto.SignInResponseDTO {
	userID := uuid.New()
	shortID := userID.String()[:8]
	email := fmt.Sprintf("user-%s@test.com", shortID)

	hashedPassword := "$2a$10$test"
	user := &users_models.User{
		ID:                   userID,
		Fullname:             "Test User " + shortID,
		Email:                email,
		HashedPassword:       &hashedPassword,
		PasswordCreationTime: time.Now().UTC(),
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	userRepository := &users_repositories.UserRepository{}
	if err := userRepository.CreateUser(user); err != nil {
		panic(err)
	}

	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}
