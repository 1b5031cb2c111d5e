package rbac

import (
	"errors"
	"fmt"
)

// Permission names a grant as resource type plus action; String renders the
// "resource:action" form checked by the navigation filter.
type Permission struct {
	ID           int64   `json:"id"`
	ResourceType string  `json:"resource_type"`
	Action       string  `json:"action"`
	Description  *string `json:"description"`
}

func (p Permission) String() string {
	return fmt.Sprintf("%s:%s", p.ResourceType, p.Action)
}

type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	CompanyID   int64        `json:"company_id"`
	Permissions []Permission `json:"permissions"`
}

type CreateRoleDTO struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	PermissionIDs []int64 `json:"permission_ids"`
}

type AssignRoleDTO struct {
	PersonID int64 `json:"user_id"`
	RoleID   int64 `json:"role_id"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateRoleDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	return nil
}

func (d AssignRoleDTO) Validate() error {
	if d.PersonID <= 0 {
		return ValidationError{Msg: "user_id is required"}
	}
	if d.RoleID <= 0 {
		return ValidationError{Msg: "role_id is required"}
	}
	return nil
}

type ServiceAPI interface {
	ListRoles(companyID int64) ([]Role, error)
	CreateRole(companyID int64, dto CreateRoleDTO) (*Role, error)
	ListPermissions() ([]Permission, error)
	AssignRole(companyID int64, dto AssignRoleDTO) error
	PermissionsForPerson(personID, companyID int64) ([]string, error)
}

type RepositoryAPI interface {
	ListRolesByCompany(companyID int64) ([]Role, error)
	GetRole(roleID int64) (*Role, error)
	CreateRole(companyID int64, name string, description *string, permissionIDs []int64) (*Role, error)
	ListPermissions() ([]Permission, error)
	AssignRole(personID, roleID, companyID int64) error
	PermissionsForPerson(personID, companyID int64) ([]Permission, error)
}

var (
	ErrRoleNotFound  = errors.New("role not found")
	ErrRoleNameTaken = errors.New("role name already exists in company")
)
