package projects_repositories

import (
	"errors"
	"fmt"

	projects_dto "agilcurn/internal/features/projects/dto"
	projects_models "agilcurn/internal/features/projects/models"
	"agilcurn/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRoleRepository struct{}

func (r *UserRoleRepository) CreateUserRole(tx *gorm.DB, userRole *projects_models.UserRole) error {
	if err := tx.Create(userRole).Error; err != nil {
		return fmt.Errorf("failed to create user role: %w", err)
	}
	return nil
}

func (r *UserRoleRepository) GetUserRole(projectID uuid.UUID, userID uuid.UUID) (*projects_models.UserRole, error) {
	var userRole projects_models.UserRole

	err := storage.GetDb().
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&userRole).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user role: %w", err)
	}

	return &userRole, nil
}

// GetProjectMembers lists every member with their role, creator included.
func (r *UserRoleRepository) GetProjectMembers(projectID uuid.UUID) ([]projects_dto.ProjectMemberDTO, error) {
	var members []projects_dto.ProjectMemberDTO

	err := storage.GetDb().
		Model(&projects_models.UserRole{}).
		Select("user_roles.user_id, users.fullname, users.email, user_roles.role_id, roles.role_name").
		Joins("JOIN users ON users.id = user_roles.user_id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.project_id = ?", projectID).
		Order("user_roles.created_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get project members: %w", err)
	}

	return members, nil
}

func (r *UserRoleRepository) DeleteUserRole(tx *gorm.DB, projectID uuid.UUID, userID uuid.UUID) error {
	err := tx.
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&projects_models.UserRole{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete user role: %w", err)
	}
	return nil
}

func (r *UserRoleRepository) DeleteUserRolesForProject(tx *gorm.DB, projectID uuid.UUID) error {
	err := tx.
		Where("project_id = ?", projectID).
		Delete(&projects_models.UserRole{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete user roles for project: %w", err)
	}
	return nil
}
