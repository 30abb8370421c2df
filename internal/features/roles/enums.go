package roles

// RoleID is the closed project-role catalog. Stable numeric ids: permission
// checks compare ids, never display names.
type RoleID int16

const (
	RoleProductOwner RoleID = 1
	RoleScrumMaster  RoleID = 2
	RoleDeveloper    RoleID = 3
)

func (r RoleID) IsValid() bool {
	switch r {
	case RoleProductOwner, RoleScrumMaster, RoleDeveloper:
		return true
	default:
		return false
	}
}

// CanManageSprints reports whether the role may create/delete sprints and
// move tasks between sprints.
func (r RoleID) CanManageSprints() bool {
	return r == RoleProductOwner || r == RoleScrumMaster
}

func (r RoleID) String() string {
	switch r {
	case RoleProductOwner:
		return "Product Owner"
	case RoleScrumMaster:
		return "Scrum Master"
	case RoleDeveloper:
		return "Developer"
	default:
		return "Unknown"
	}
}
