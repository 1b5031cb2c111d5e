package postgres

import (
	"errors"

	rbacModel "github.com/frahmantamala/cash-pro/internal/core/datamodel/rbac"
	"github.com/frahmantamala/cash-pro/internal/rbac"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListRolesByCompany(companyID int64) ([]rbac.Role, error) {
	var rows []rbacModel.Role
	err := r.db.Where("company_id = ?", companyID).Order("created_at ASC, id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	roles := make([]rbac.Role, 0, len(rows))
	for _, row := range rows {
		perms, err := r.permissionsForRole(row.ID)
		if err != nil {
			return nil, err
		}
		roles = append(roles, rbac.Role{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			CompanyID:   row.CompanyID,
			Permissions: perms,
		})
	}
	return roles, nil
}

func (r *Repository) GetRole(roleID int64) (*rbac.Role, error) {
	var row rbacModel.Role
	if err := r.db.First(&row, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rbac.ErrRoleNotFound
		}
		return nil, err
	}

	perms, err := r.permissionsForRole(row.ID)
	if err != nil {
		return nil, err
	}
	return &rbac.Role{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CompanyID:   row.CompanyID,
		Permissions: perms,
	}, nil
}

func (r *Repository) CreateRole(companyID int64, name string, description *string, permissionIDs []int64) (*rbac.Role, error) {
	row := rbacModel.Role{
		Name:        name,
		Description: description,
		CompanyID:   companyID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, pid := range permissionIDs {
			link := rbacModel.RolePermission{RoleID: row.ID, PermissionID: pid}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetRole(row.ID)
}

func (r *Repository) ListPermissions() ([]rbac.Permission, error) {
	var rows []rbacModel.Permission
	err := r.db.Order("resource_type ASC, action ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainPermissions(rows), nil
}

func (r *Repository) AssignRole(personID, roleID, companyID int64) error {
	// One role per person per company; assigning replaces the previous one.
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("person_id = ? AND company_id = ?", personID, companyID).
			Delete(&rbacModel.PersonRole{}).Error
		if err != nil {
			return err
		}
		link := rbacModel.PersonRole{
			PersonID:  personID,
			RoleID:    roleID,
			CompanyID: companyID,
		}
		return tx.Create(&link).Error
	})
}

func (r *Repository) PermissionsForPerson(personID, companyID int64) ([]rbac.Permission, error) {
	var rows []rbacModel.Permission
	err := r.db.Raw(`
		SELECT DISTINCT p.id, p.resource_type, p.action, p.description
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		JOIN person_roles pr ON pr.role_id = rp.role_id
		WHERE pr.person_id = ? AND pr.company_id = ?
	`, personID, companyID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainPermissions(rows), nil
}

func (r *Repository) permissionsForRole(roleID int64) ([]rbac.Permission, error) {
	var rows []rbacModel.Permission
	err := r.db.Raw(`
		SELECT p.id, p.resource_type, p.action, p.description
		FROM permissions p
		JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = ?
		ORDER BY p.resource_type ASC, p.action ASC
	`, roleID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainPermissions(rows), nil
}

func toDomainPermissions(rows []rbacModel.Permission) []rbac.Permission {
	perms := make([]rbac.Permission, 0, len(rows))
	for _, row := range rows {
		perms = append(perms, rbac.Permission{
			ID:           row.ID,
			ResourceType: row.ResourceType,
			Action:       row.Action,
			Description:  row.Description,
		})
	}
	return perms
}
