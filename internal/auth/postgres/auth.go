package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/frahmantamala/cash-pro/internal/auth"
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

func (r *Repository) GetByEmailOrUsername(emailOrUsername string) (*auth.PersonRecord, error) {
	var p personModel.Person
	err := r.db.Where("email = ? OR username = ?", strings.ToLower(emailOrUsername), emailOrUsername).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}
	return toRecord(&p), nil
}

func (r *Repository) GetPersonByID(personID int64) (*auth.PersonRecord, error) {
	var p personModel.Person
	err := r.db.Where("id = ?", personID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidSession
		}
		return nil, err
	}
	return toRecord(&p), nil
}

func (r *Repository) CreatePerson(email, passwordHash string, firstName, lastName *string) (*auth.PersonRecord, error) {
	var existing int64
	if err := r.db.Model(&personModel.Person{}).
		Where("email = ?", strings.ToLower(email)).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, auth.ErrEmailTaken
	}

	p := personModel.Person{
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		IsActive:     true,
	}
	if err := r.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return toRecord(&p), nil
}

func (r *Repository) GetMemberships(personID int64) ([]auth.Membership, error) {
	type row struct {
		ID           int64
		Name         string
		Slug         string
		DatabaseName *string
		Role         string
		IsDefault    bool
	}

	var rows []row
	err := r.db.Raw(`
		SELECT c.id, c.name, c.slug, c.database_name, pc.role, pc.is_default
		FROM companies c
		JOIN person_companies pc ON pc.company_id = c.id
		WHERE pc.person_id = ?
		ORDER BY pc.created_at, c.id`, personID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	memberships := make([]auth.Membership, 0, len(rows))
	for _, row := range rows {
		memberships = append(memberships, auth.Membership{
			Company: auth.Company{
				ID:           row.ID,
				Name:         row.Name,
				Slug:         row.Slug,
				DatabaseName: row.DatabaseName,
			},
			Role:      row.Role,
			IsDefault: row.IsDefault,
		})
	}
	return memberships, nil
}

func (r *Repository) SetDefaultCompany(personID, companyID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&companyModel.PersonCompany{}).
			Where("person_id = ?", personID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		res := tx.Model(&companyModel.PersonCompany{}).
			Where("person_id = ? AND company_id = ?", personID, companyID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return auth.ErrNotMember
		}
		return nil
	})
}

func (r *Repository) GetMembershipRole(personID, companyID int64) (string, error) {
	var pc companyModel.PersonCompany
	err := r.db.Where("person_id = ? AND company_id = ?", personID, companyID).First(&pc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", auth.ErrNotMember
		}
		return "", err
	}
	return pc.Role, nil
}

func toRecord(p *personModel.Person) *auth.PersonRecord {
	return &auth.PersonRecord{
		Person: auth.Person{
			ID:           p.ID,
			Email:        p.Email,
			Username:     p.Username,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			IsActive:     p.IsActive,
			IsVerified:   p.IsVerified,
			IsSuperAdmin: p.IsSuperAdmin,
		},
		PasswordHash: p.PasswordHash,
	}
}
