package company

import (
	"fmt"
	"regexp"
	"strings"
)

// RoleOwner is assigned to the creating member; ownership is what unlocks the
// role-gated settings items in the navigation tree.
const RoleOwner = "owner"

type Service struct {
	repo RepositoryAPI
}

func NewService(repo RepositoryAPI) *Service {
	return &Service{repo: repo}
}

// CreateCompany creates the tenant workspace and makes the creator its owner
// and current company. This is the step that moves a fresh registration out
// of forced onboarding.
func (s *Service) CreateCompany(personID int64, dto CreateCompanyDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(dto.Name)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(dto, slug)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	if err := s.repo.AddMembership(personID, created.ID, RoleOwner, true); err != nil {
		return nil, fmt.Errorf("create owner membership: %w", err)
	}

	return created, nil
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "company"
	}
	return slug
}

func (s *Service) uniqueSlug(name string) (string, error) {
	base := Slugify(name)
	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(slug)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
