package roles

type Role struct {
	ID          RoleID `json:"id"          gorm:"column:id;primaryKey"`
	RoleName    string `json:"roleName"    gorm:"column:role_name;uniqueIndex"`
	Description string `json:"description" gorm:"column:description"`
}

func (Role) TableName() string {
	return "roles"
}
