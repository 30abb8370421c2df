package users_dto

import (
	"time"

	"github.com/google/uuid"
)

type SignUpRequestDTO struct {
	Fullname string `json:"fullname" binding:"required,min=1,max=255"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SignInRequestDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponseDTO struct {
	UserID   uuid.UUID `json:"userId"`
	Fullname string    `json:"fullname"`
	Email    string    `json:"email"`
	Token    string    `json:"token"`
}

type RegisterPushTokenRequestDTO struct {
	ExpoPushToken string `json:"expoPushToken" binding:"required"`
}

type UserProfileResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListUsersResponseDTO struct {
	Users []UserProfileResponseDTO `json:"users"`
}
