package projects_models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name"`
	CreatorID uuid.UUID `json:"creatorId" gorm:"column:creator_id"`
	StartDate time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate   time.Time `json:"endDate"   gorm:"column:end_date"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`

	// Cache marker for negative lookups
	IsNotExists bool `json:"isNotExists,omitempty" gorm:"-"`
}

func (Project) TableName() string {
	return "projects"
}

// HasEnded reports whether the project window is already closed; bottleneck
// pushes are suppressed for ended projects.
func (p *Project) HasEnded(now time.Time) bool {
	return p.EndDate.Before(now)
}
