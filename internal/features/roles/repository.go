package roles

import (
	"agilcurn/internal/storage"

	"gorm.io/gorm"
)

type RoleRepository struct{}

func (r *RoleRepository) GetRoleByName(name string) (*Role, error) {
	var role Role

	if err := storage.GetDb().Where("role_name = ?", name).First(&role).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &role, nil
}

func (r *RoleRepository) GetRoleByID(roleID RoleID) (*Role, error) {
	var role Role

	if err := storage.GetDb().Where("id = ?", roleID).First(&role).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, err
	}

	return &role, nil
}

func (r *RoleRepository) CreateRole(role *Role) error {
	return storage.GetDb().Create(role).Error
}

func (r *RoleRepository) GetRoles() ([]*Role, error) {
	var catalog []*Role

	err := storage.GetDb().Order("id ASC").Find(&catalog).Error

	return catalog, err
}
