package roles

import (
	"fmt"
	"log/slog"
)

type RoleService struct {
	roleRepository *RoleRepository
	logger         *slog.Logger
}

var catalog = []Role{
	{
		ID:       RoleProductOwner,
		RoleName: "Product Owner",
		Description: "Responsible for maximizing product value and managing the product backlog, " +
			"ensuring the team is working on the right tasks.",
	},
	{
		ID:       RoleScrumMaster,
		RoleName: "Scrum Master",
		Description: "Facilitates Scrum ceremonies and helps remove impediments for the team, " +
			"ensuring the team follows Scrum practices effectively.",
	},
	{
		ID:       RoleDeveloper,
		RoleName: "Developer",
		Description: "Team member responsible for designing, developing and testing the product, " +
			"collaborating closely with other roles to deliver functional increments.",
	},
}

// InitializeRoles seeds the fixed role catalog. Idempotent: runs at every
// startup, existing roles are left untouched.
func (s *RoleService) InitializeRoles() error {
	for _, role := range catalog {
		existingRole, err := s.roleRepository.GetRoleByName(role.RoleName)
		if err != nil {
			return fmt.Errorf("failed to check role %q: %w", role.RoleName, err)
		}

		if existingRole != nil {
			continue
		}

		if err := s.roleRepository.CreateRole(&role); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", role.RoleName, err)
		}

		s.logger.Info("Role created", "role", role.RoleName)
	}

	return nil
}

func (s *RoleService) GetRoles() ([]*Role, error) {
	return s.roleRepository.GetRoles()
}

func (s *RoleService) GetRoleByID(roleID RoleID) (*Role, error) {
	return s.roleRepository.GetRoleByID(roleID)
}
