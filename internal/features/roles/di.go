package roles

import (
	"agilcurn/internal/util/logger"
)

var roleRepository = &RoleRepository{}
var roleService = &RoleService{
	roleRepository: roleRepository,
	logger:         logger.GetLogger(),
}

func GetRoleService() *RoleService {
	return roleService
}
