package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type InvitationToProject struct {
	ID        uuid.UUID  `json:"id"        gorm:"column:id;primaryKey"`
	ProjectID uuid.UUID  `json:"projectId" gorm:"column:project_id"`
	InvitedID *uuid.UUID `json:"invitedId" gorm:"column:invited_id"`
	Confirmed bool       `json:"confirmed" gorm:"column:confirmed"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at"`
}

func (InvitationToProject) TableName() string {
	return "invitations_to_project"
}
