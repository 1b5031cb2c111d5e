package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Person is the authenticated identity. It is issued whole by the service and
// never mutated in place; login/logout replace it.
type Person struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Username     *string `json:"username,omitempty"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	IsActive     bool    `json:"is_active"`
	IsVerified   bool    `json:"is_verified"`
	IsSuperAdmin bool    `json:"is_super_admin"`
}

// Company is a membership entry as seen by the session: the tenant workspace
// plus its optional backing database name.
type Company struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	DatabaseName *string `json:"database_name"`
}

// AuthState is the full payload returned by login, register and the current
// identity endpoint. All four fields travel together; there is no partial
// form of this type on the wire.
type AuthState struct {
	Person           *Person   `json:"person"`
	Companies        []Company `json:"companies"`
	CurrentCompanyID *int64    `json:"current_company_id"`
	IsImpersonating  bool      `json:"is_impersonating"`
}

// Membership is the person-company relationship with its company-scoped role.
type Membership struct {
	Company   Company
	Role      string
	IsDefault bool
}

type Claims struct {
	PersonID string `json:"person_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

type ServiceAPI interface {
	Login(dto LoginDTO) (*AuthState, string, error)
	Register(dto RegisterDTO) (*AuthState, string, error)
	Logout(personID int64) error
	StateForPerson(personID int64) (*AuthState, error)
	SwitchCompany(personID, companyID int64) error
	ValidateSessionToken(tokenString string) (*Claims, error)
	RoleInCompany(personID, companyID int64) (string, error)
}

type RepositoryAPI interface {
	GetByEmailOrUsername(emailOrUsername string) (*PersonRecord, error)
	GetPersonByID(personID int64) (*PersonRecord, error)
	CreatePerson(email, passwordHash string, firstName, lastName *string) (*PersonRecord, error)
	GetMemberships(personID int64) ([]Membership, error)
	SetDefaultCompany(personID, companyID int64) error
	GetMembershipRole(personID, companyID int64) (string, error)
}

// PersonRecord is the repository-facing shape, including the password hash
// that must never cross into AuthState.
type PersonRecord struct {
	Person
	PasswordHash string
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPersonInactive     = errors.New("person is inactive")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidSession     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
	ErrNotMember          = errors.New("not a member of company")
)
