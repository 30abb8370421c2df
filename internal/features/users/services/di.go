package users_services

import (
	users_repositories "agilcurn/internal/features/users/repositories"
	"agilcurn/internal/notifications"
)

var userRepository = &users_repositories.UserRepository{}
var secretKeyRepository = &users_repositories.SecretKeyRepository{}

var userService = &UserService{
	userRepository:      userRepository,
	secretKeyRepository: secretKeyRepository,
	dispatcher:          notifications.GetDispatcher(),
}

func GetUserService() *UserService {
	return userService
}
