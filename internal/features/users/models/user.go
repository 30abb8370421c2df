package users_models

import (
	"time"

	users_enums "agilcurn/internal/features/users/enums"

	"github.com/google/uuid"
)

type User struct {
	ID                   uuid.UUID              `json:"id"        gorm:"column:id;primaryKey"`
	Fullname             string                 `json:"fullname"  gorm:"column:fullname"`
	Email                string                 `json:"email"     gorm:"column:email;uniqueIndex"`
	HashedPassword       *string                `json:"-"         gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"         gorm:"column:password_creation_time"`
	ExpoPushToken        *string                `json:"-"         gorm:"column:expo_push_token"`
	Status               users_enums.UserStatus `json:"status"    gorm:"column:status"`
	CreatedAt            time.Time              `json:"createdAt" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}

func (u *User) HasPushToken() bool {
	return u.ExpoPushToken != nil && *u.ExpoPushToken != ""
}
