package company

import "time"

type Company struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Slug         string    `gorm:"column:slug;uniqueIndex;not null"`
	LegalName    *string   `gorm:"column:legal_name"`
	TaxID        *string   `gorm:"column:tax_id"`
	AddressLine1 *string   `gorm:"column:address_line1"`
	AddressLine2 *string   `gorm:"column:address_line2"`
	City         *string   `gorm:"column:city"`
	State        *string   `gorm:"column:state"`
	PostalCode   *string   `gorm:"column:postal_code"`
	Country      *string   `gorm:"column:country"`
	Phone        *string   `gorm:"column:phone"`
	Website      *string   `gorm:"column:website"`
	DatabaseName *string   `gorm:"column:database_name"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string {
	return "companies"
}

// PersonCompany is the membership row linking a person to a company with a
// company-scoped role name.
type PersonCompany struct {
	ID        int64     `gorm:"primaryKey"`
	PersonID  int64     `gorm:"column:person_id;not null;index"`
	CompanyID int64     `gorm:"column:company_id;not null;index"`
	Role      string    `gorm:"column:role;default:member"`
	IsDefault bool      `gorm:"column:is_default;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PersonCompany) TableName() string {
	return "person_companies"
}
