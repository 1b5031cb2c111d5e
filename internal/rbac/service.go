package rbac

import "fmt"

type Service struct {
	repo RepositoryAPI
}

func NewService(repo RepositoryAPI) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListRoles(companyID int64) ([]Role, error) {
	roles, err := s.repo.ListRolesByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (s *Service) CreateRole(companyID int64, dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListRolesByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("check role name: %w", err)
	}
	for _, role := range existing {
		if role.Name == dto.Name {
			return nil, ErrRoleNameTaken
		}
	}

	role, err := s.repo.CreateRole(companyID, dto.Name, dto.Description, dto.PermissionIDs)
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}
	return role, nil
}

func (s *Service) ListPermissions() ([]Permission, error) {
	return s.repo.ListPermissions()
}

func (s *Service) AssignRole(companyID int64, dto AssignRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	role, err := s.repo.GetRole(dto.RoleID)
	if err != nil {
		return err
	}
	if role.CompanyID != companyID {
		// Roles are company-scoped; cross-company assignment is a not-found,
		// not a forbidden, to avoid leaking other tenants' role ids.
		return ErrRoleNotFound
	}

	return s.repo.AssignRole(dto.PersonID, dto.RoleID, companyID)
}

// PermissionsForPerson flattens the person's assigned roles into the
// "resource:action" grant set the navigation filter checks.
func (s *Service) PermissionsForPerson(personID, companyID int64) ([]string, error) {
	perms, err := s.repo.PermissionsForPerson(personID, companyID)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}

	seen := make(map[string]struct{}, len(perms))
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		key := p.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}
