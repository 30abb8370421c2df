package projects_repositories

import (
	"errors"
	"fmt"

	projects_models "agilcurn/internal/features/projects/models"
	"agilcurn/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationRepository struct{}

func (r *InvitationRepository) CreateInvitation(invitation *projects_models.InvitationToProject) error {
	if err := storage.GetDb().Create(invitation).Error; err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) GetInvitationByID(invitationID uuid.UUID) (*projects_models.InvitationToProject, error) {
	var invitation projects_models.InvitationToProject

	err := storage.GetDb().
		Where("id = ?", invitationID).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}

	return &invitation, nil
}

func (r *InvitationRepository) GetConfirmedInvitation(projectID uuid.UUID, userID uuid.UUID) (*projects_models.InvitationToProject, error) {
	var invitation projects_models.InvitationToProject

	err := storage.GetDb().
		Where("project_id = ? AND invited_id = ? AND confirmed = ?", projectID, userID, true).
		First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get confirmed invitation: %w", err)
	}

	return &invitation, nil
}

func (r *InvitationRepository) ConfirmInvitation(tx *gorm.DB, invitationID uuid.UUID) error {
	err := tx.Model(&projects_models.InvitationToProject{}).
		Where("id = ?", invitationID).
		Update("confirmed", true).Error
	if err != nil {
		return fmt.Errorf("failed to confirm invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) DeleteInvitationsForMember(tx *gorm.DB, projectID uuid.UUID, userID uuid.UUID) error {
	err := tx.
		Where("project_id = ? AND invited_id = ?", projectID, userID).
		Delete(&projects_models.InvitationToProject{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete invitations for member: %w", err)
	}
	return nil
}

func (r *InvitationRepository) DeleteInvitationsForProject(tx *gorm.DB, projectID uuid.UUID) error {
	err := tx.
		Where("project_id = ?", projectID).
		Delete(&projects_models.InvitationToProject{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete invitations for project: %w", err)
	}
	return nil
}
