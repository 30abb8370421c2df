package tasks

import (
	"errors"
	"fmt"

	"agilcurn/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SprintRepository struct{}

func (r *SprintRepository) CreateSprint(sprint *Sprint) error {
	if err := storage.GetDb().Create(sprint).Error; err != nil {
		return fmt.Errorf("failed to create sprint: %w", err)
	}
	return nil
}

func (r *SprintRepository) GetSprintByID(sprintID uuid.UUID) (*Sprint, error) {
	var sprint Sprint

	err := storage.GetDb().
		Where("id = ?", sprintID).
		First(&sprint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sprint: %w", err)
	}

	return &sprint, nil
}

func (r *SprintRepository) GetSprintsByProject(projectID uuid.UUID) ([]*Sprint, error) {
	var sprints []*Sprint

	err := storage.GetDb().
		Where("project_id = ?", projectID).
		Order("start_date ASC").
		Find(&sprints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sprints for project: %w", err)
	}

	return sprints, nil
}

func (r *SprintRepository) UpdateSprintDates(tx *gorm.DB, sprintID uuid.UUID, sprint *Sprint) error {
	err := tx.Model(&Sprint{}).
		Where("id = ?", sprintID).
		Updates(map[string]interface{}{
			"start_date": sprint.StartDate,
			"end_date":   sprint.EndDate,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update sprint dates: %w", err)
	}
	return nil
}

func (r *SprintRepository) DeleteSprint(tx *gorm.DB, sprintID uuid.UUID) error {
	err := tx.
		Where("id = ?", sprintID).
		Delete(&Sprint{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete sprint: %w", err)
	}
	return nil
}

func (r *SprintRepository) DeleteSprintsForProject(tx *gorm.DB, projectID uuid.UUID) error {
	err := tx.
		Where("project_id = ?", projectID).
		Delete(&Sprint{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete sprints for project: %w", err)
	}
	return nil
}
