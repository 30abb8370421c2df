package projects_repositories

import (
	"errors"
	"fmt"

	projects_models "agilcurn/internal/features/projects/models"
	"agilcurn/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct{}

func (r *ProjectRepository) CreateProject(tx *gorm.DB, project *projects_models.Project) error {
	if err := tx.Create(project).Error; err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	var project projects_models.Project

	err := storage.GetDb().
		Where("id = ?", projectID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return &project, nil
}

// GetProjectsForUser returns projects the user created or joined through a
// confirmed invitation, newest first.
func (r *ProjectRepository) GetProjectsForUser(userID uuid.UUID) ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	err := storage.GetDb().
		Where(
			"creator_id = ? OR id IN (?)",
			userID,
			storage.GetDb().
				Model(&projects_models.InvitationToProject{}).
				Select("project_id").
				Where("invited_id = ? AND confirmed = ?", userID, true),
		).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get projects for user: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepository) GetAllProjects() ([]*projects_models.Project, error) {
	var projects []*projects_models.Project

	if err := storage.GetDb().Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to get all projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepository) UpdateProject(tx *gorm.DB, project *projects_models.Project) error {
	err := tx.Model(&projects_models.Project{}).
		Where("id = ?", project.ID).
		Updates(map[string]interface{}{
			"name":       project.Name,
			"start_date": project.StartDate,
			"end_date":   project.EndDate,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) DeleteProject(tx *gorm.DB, projectID uuid.UUID) error {
	err := tx.
		Where("id = ?", projectID).
		Delete(&projects_models.Project{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}
