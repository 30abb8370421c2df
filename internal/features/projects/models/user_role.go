package projects_models

import (
	"time"

	"agilcurn/internal/features/roles"

	"github.com/google/uuid"
)

// UserRole is the (user, project, role) grant. One row per member per
// project; created for the creator at project creation and for invitees at
// invitation confirmation.
type UserRole struct {
	ID        uuid.UUID    `json:"id"        gorm:"column:id;primaryKey"`
	UserID    uuid.UUID    `json:"userId"    gorm:"column:user_id;uniqueIndex:idx_user_project"`
	ProjectID uuid.UUID    `json:"projectId" gorm:"column:project_id;uniqueIndex:idx_user_project"`
	RoleID    roles.RoleID `json:"roleId"    gorm:"column:role_id"`
	CreatedAt time.Time    `json:"createdAt" gorm:"column:created_at"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
