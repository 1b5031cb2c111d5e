package postgres

import (
	"github.com/frahmantamala/cash-pro/internal/company"
	companyModel "github.com/frahmantamala/cash-pro/internal/core/datamodel/company"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(dto company.CreateCompanyDTO, slug string) (*company.Company, error) {
	row := companyModel.Company{
		Name:         dto.Name,
		Slug:         slug,
		LegalName:    dto.LegalName,
		TaxID:        dto.TaxID,
		AddressLine1: dto.AddressLine1,
		AddressLine2: dto.AddressLine2,
		City:         dto.City,
		State:        dto.State,
		PostalCode:   dto.PostalCode,
		Country:      dto.Country,
		Phone:        dto.Phone,
		Website:      dto.Website,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return nil, err
	}

	return &company.Company{
		ID:           row.ID,
		Name:         row.Name,
		Slug:         row.Slug,
		DatabaseName: row.DatabaseName,
	}, nil
}

func (r *Repository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&companyModel.Company{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) AddMembership(personID, companyID int64, role string, isDefault bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if isDefault {
			if err := tx.Model(&companyModel.PersonCompany{}).
				Where("person_id = ?", personID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&companyModel.PersonCompany{
			PersonID:  personID,
			CompanyID: companyID,
			Role:      role,
			IsDefault: isDefault,
		}).Error
	})
}
