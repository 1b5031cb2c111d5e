package rbac

import "time"

type Role struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	CompanyID   int64     `gorm:"column:company_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Role) TableName() string {
	return "roles"
}

// Permission rows name a grant as resource_type plus action; the wire form is
// the joined "resource:action" string.
type Permission struct {
	ID           int64   `gorm:"primaryKey"`
	ResourceType string  `gorm:"column:resource_type;not null"`
	Action       string  `gorm:"column:action;not null"`
	Description  *string `gorm:"column:description"`
}

func (Permission) TableName() string {
	return "permissions"
}

type RolePermission struct {
	RoleID       int64 `gorm:"column:role_id;primaryKey"`
	PermissionID int64 `gorm:"column:permission_id;primaryKey"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}

type PersonRole struct {
	ID        int64     `gorm:"primaryKey"`
	PersonID  int64     `gorm:"column:person_id;not null;index"`
	RoleID    int64     `gorm:"column:role_id;not null;index"`
	CompanyID int64     `gorm:"column:company_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PersonRole) TableName() string {
	return "person_roles"
}
