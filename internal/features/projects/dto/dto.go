package projects_dto

import (
	"time"

	"agilcurn/internal/features/roles"

	"github.com/google/uuid"
)

// Project DTOs
type CreateProjectRequestDTO struct {
	Name      string    `json:"name"      binding:"required,min=1,max=255"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate"   binding:"required"`
}

// SprintDatesDTO carries corrected sprint windows supplied together with a
// project date change.
type SprintDatesDTO struct {
	ID         uuid.UUID `json:"id"         binding:"required"`
	SprintName string    `json:"sprintName"`
	StartDate  time.Time `json:"startDate"  binding:"required"`
	EndDate    time.Time `json:"endDate"    binding:"required"`
}

type UpdateProjectRequestDTO struct {
	Name      *string          `json:"name"`
	StartDate *time.Time       `json:"startDate"`
	EndDate   *time.Time       `json:"endDate"`
	Sprints   []SprintDatesDTO `json:"sprints"`
}

type ProjectResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatorID uuid.UUID `json:"creatorId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`

	// Caller's role in this project, when resolved
	RoleID *roles.RoleID `json:"roleId,omitempty"`
}

type ListProjectsResponseDTO struct {
	Projects []ProjectResponseDTO `json:"projects"`
}

// Membership DTOs
type ProjectMemberDTO struct {
	UserID   uuid.UUID    `json:"userId"   gorm:"column:user_id"`
	Fullname string       `json:"fullname" gorm:"column:fullname"`
	Email    string       `json:"email"    gorm:"column:email"`
	RoleID   roles.RoleID `json:"roleId"   gorm:"column:role_id"`
	RoleName string       `json:"roleName" gorm:"column:role_name"`
}

type GetMembersResponseDTO struct {
	Members []ProjectMemberDTO `json:"members"`
}

type ProjectWithMembersDTO struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	CreatorID uuid.UUID          `json:"creatorId"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
	Members   []ProjectMemberDTO `json:"members"`
}

// Invitation DTOs
type InviteMemberRequestDTO struct {
	RoleID    roles.RoleID `json:"roleId" binding:"required"`
	InvitedID *uuid.UUID   `json:"userId"`
	Email     string       `json:"email"`
}

type InvitationResponseDTO struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"projectId"`
	InvitedID *uuid.UUID `json:"invitedId"`
	Confirmed bool       `json:"confirmed"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ConfirmInvitationRequestDTO struct {
	RoleID roles.RoleID `json:"roleId" binding:"required"`
}
