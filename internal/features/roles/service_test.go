package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_InitializeRoles_IsIdempotent(t *testing.T) {
	service := GetRoleService()

	require.NoError(t, service.InitializeRoles())
	require.NoError(t, service.InitializeRoles())

	allRoles, err := service.GetRoles()
	require.NoError(t, err)

	names := map[RoleID]string{}
	for _, role := range allRoles {
		names[role.ID] = role.RoleName
	}

	assert.Equal(t, "Product Owner", names[RoleProductOwner])
	assert.Equal(t, "Scrum Master", names[RoleScrumMaster])
	assert.Equal(t, "Developer", names[RoleDeveloper])
}

func Test_RoleID_CanManageSprints(t *testing.T) {
	assert.True(t, RoleProductOwner.CanManageSprints())
	assert.True(t, RoleScrumMaster.CanManageSprints())
	assert.False(t, RoleDeveloper.CanManageSprints())
}

func Test_RoleID_IsValid(t *testing.T) {
	assert.True(t, RoleProductOwner.IsValid())
	assert.True(t, RoleScrumMaster.IsValid())
	assert.True(t, RoleDeveloper.IsValid())
	assert.False(t, RoleID(0).IsValid())
	assert.False(t, RoleID(42).IsValid())
}
