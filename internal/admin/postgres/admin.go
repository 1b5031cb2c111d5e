package postgres

import (
	"github.com/frahmantamala/cash-pro/internal/admin"
	companyModel "github.com/frahmantamala/cash-pro/internal/core/datamodel/company"
	personModel "github.com/frahmantamala/cash-pro/internal/core/datamodel/person"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListPeople() ([]admin.PersonSummary, error) {
	var rows []personModel.Person
	if err := r.db.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	people := make([]admin.PersonSummary, 0, len(rows))
	for _, row := range rows {
		people = append(people, toSummary(&row))
	}
	return people, nil
}

func (r *Repository) CreatePerson(dto admin.CreatePersonDTO, passwordHash string) (*admin.PersonSummary, error) {
	row := personModel.Person{
		Email:        dto.Email,
		Username:     &dto.Username,
		PasswordHash: passwordHash,
		FirstName:    optional(dto.FirstName),
		LastName:     optional(dto.LastName),
		IsActive:     true,
		IsVerified:   true,
		IsSuperAdmin: dto.IsSuperAdmin,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}
	summary := toSummary(&row)
	return &summary, nil
}

func (r *Repository) EmailOrUsernameTaken(email, username string) (bool, error) {
	var count int64
	err := r.db.Model(&personModel.Person{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ListCompanies() ([]admin.CompanySummary, error) {
	type companyRow struct {
		companyModel.Company
		MemberCount int64
	}

	var rows []companyRow
	err := r.db.Raw(`
		SELECT c.*, COUNT(pc.id) AS member_count
		FROM companies c
		LEFT JOIN person_companies pc ON pc.company_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	companies := make([]admin.CompanySummary, 0, len(rows))
	for _, row := range rows {
		companies = append(companies, admin.CompanySummary{
			ID:          row.ID,
			Name:        row.Name,
			Slug:        row.Slug,
			Country:     row.Country,
			HasDatabase: row.DatabaseName != nil && *row.DatabaseName != "",
			MemberCount: row.MemberCount,
			CreatedAt:   row.CreatedAt,
		})
	}
	return companies, nil
}

func toSummary(row *personModel.Person) admin.PersonSummary {
	return admin.PersonSummary{
		ID:           row.ID,
		Email:        row.Email,
		Username:     deref(row.Username),
		FirstName:    deref(row.FirstName),
		LastName:     deref(row.LastName),
		IsActive:     row.IsActive,
		IsVerified:   row.IsVerified,
		IsSuperAdmin: row.IsSuperAdmin,
		CreatedAt:    row.CreatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
