package users_services

import (
	"errors"
	"fmt"
	"time"

	users_dto "agilcurn/internal/features/users/dto"
	users_enums "agilcurn/internal/features/users/enums"
	users_interfaces "agilcurn/internal/features/users/interfaces"
	users_models "agilcurn/internal/features/users/models"
	users_repositories "agilcurn/internal/features/users/repositories"
	"agilcurn/internal/notifications"
	"agilcurn/internal/util/apperrors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
	dispatcher          *notifications.Dispatcher
	// audit log is never nil, DI always set it
	auditLogWriter users_interfaces.AuditLogWriter
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) error {
	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return apperrors.Conflict("user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Fullname:             request.Fullname,
		Email:                request.Email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		Status:               users_enums.UserStatusActive,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User registered with email: %s", user.Email),
		&user.ID,
		nil,
	)

	s.dispatcher.Dispatch(notifications.EmailEvent(
		user.Email,
		"Welcome to AgilCurn",
		fmt.Sprintf("Hi! %s, you have registered successfully.", user.Fullname),
	))

	return nil
}

func (s *UserService) SignIn(request *users_dto.SignInRequestDTO) (*users_dto.SignInResponseDTO, error) {
	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, apperrors.NotFound("user with this email does not exist")
	}

	if !user.IsActiveUser() {
		return nil, apperrors.Forbidden("user account is deactivated")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, apperrors.Forbidden("password is incorrect")
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed in with email: %s", user.Email),
		&user.ID,
		nil,
	)

	return response, nil
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user does not exist")
	}

	if !user.IsActiveUser() {
		return nil, errors.New("user account is deactivated")
	}

	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims: missing password creation time")
	}

	tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0)
	if !tokenPasswordTime.Truncate(time.Second).Equal(user.PasswordCreationTime.Truncate(time.Second)) {
		return nil, errors.New("password has been changed, please sign in again")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	expiration := time.Now().UTC().Add(time.Hour * 24 * 30)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  expiration.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID:   user.ID,
		Fullname: user.Fullname,
		Email:    user.Email,
		Token:    tokenString,
	}, nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) GetUsers() (*users_dto.ListUsersResponseDTO, error) {
	users, err := s.userRepository.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	profiles := make([]users_dto.UserProfileResponseDTO, len(users))
	for i, user := range users {
		profiles[i] = users_dto.UserProfileResponseDTO{
			ID:        user.ID,
			Fullname:  user.Fullname,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		}
	}

	return &users_dto.ListUsersResponseDTO{Users: profiles}, nil
}

// ChangeUserPasswordByEmail is used by the CLI password reset flag. Updating
// the password creation time invalidates every previously issued token.
func (s *UserService) ChangeUserPasswordByEmail(email string, newPassword string) error {
	user, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return apperrors.NotFound("user with this email does not exist")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.userRepository.UpdateUserPassword(user.ID, string(hashedPassword))
}

func (s *UserService) RegisterPushToken(userID uuid.UUID, token string) error {
	if err := s.userRepository.UpdatePushToken(userID, token); err != nil {
		return fmt.Errorf("failed to register push token: %w", err)
	}

	return nil
}
