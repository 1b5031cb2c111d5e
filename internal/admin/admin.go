package admin

import "time"

// PersonSummary is the cross-tenant user listing visible to super admins.
type PersonSummary struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsActive     bool      `json:"is_active"`
	IsVerified   bool      `json:"is_verified"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

type CompanySummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Country     *string   `json:"country"`
	HasDatabase bool      `json:"has_database"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreatePersonDTO struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSuperAdmin bool   `json:"is_super_admin"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreatePersonDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Username == "" {
		return ValidationError{Msg: "username is required"}
	}
	if len(d.Password) < 8 {
		return ValidationError{Msg: "password must be at least 8 characters"}
	}
	return nil
}

type ServiceAPI interface {
	ListPeople() ([]PersonSummary, error)
	CreatePerson(dto CreatePersonDTO) (*PersonSummary, error)
	ListCompanies() ([]CompanySummary, error)
}

type RepositoryAPI interface {
	ListPeople() ([]PersonSummary, error)
	CreatePerson(dto CreatePersonDTO, passwordHash string) (*PersonSummary, error)
	EmailOrUsernameTaken(email, username string) (bool, error)
	ListCompanies() ([]CompanySummary, error)
}
