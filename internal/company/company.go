package company

import "errors"

type Company struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	DatabaseName *string `json:"database_name"`
}

type CreateCompanyDTO struct {
	Name         string  `json:"name"`
	LegalName    *string `json:"legal_name,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
	AddressLine1 *string `json:"address_line1,omitempty"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	PostalCode   *string `json:"postal_code,omitempty"`
	Country      *string `json:"country,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Website      *string `json:"website,omitempty"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateCompanyDTO) Validate() error {
	if d.Name == "" {
		return ValidationError{Msg: "name is required"}
	}
	if len(d.Name) > 120 {
		return ValidationError{Msg: "name must be at most 120 characters"}
	}
	return nil
}

type ServiceAPI interface {
	CreateCompany(personID int64, dto CreateCompanyDTO) (*Company, error)
}

type RepositoryAPI interface {
	Create(dto CreateCompanyDTO, slug string) (*Company, error)
	SlugExists(slug string) (bool, error)
	AddMembership(personID, companyID int64, role string, isDefault bool) error
}

var ErrCompanyNotFound = errors.New("company not found")
