package auth

import (
	"github.com/frahmantamala/cash-pro/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	EmailOrUsername string `json:"email_or_username"`
	Password        string `json:"password"`
}

type RegisterDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type SwitchCompanyDTO struct {
	CompanyID int64 `json:"company_id"`
}

// UserContextDTO is the per-membership context supplied to the navigation
// layer after a company switch.
type UserContextDTO struct {
	SubscriptionTier *string  `json:"subscription_tier"`
	Role             *string  `json:"role"`
	Permissions      []string `json:"permissions"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d LoginDTO) Validate() error {
	if d.EmailOrUsername == "" {
		return ValidationError{Msg: "email_or_username is required"}
	}
	if d.Password == "" {
		return ValidationError{Msg: "password is required"}
	}
	return nil
}

func (d RegisterDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required().MinLength(8).MaxLength(72)
	v.Field("first_name", d.FirstName).MaxLength(100)
	v.Field("last_name", d.LastName).MaxLength(100)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d SwitchCompanyDTO) Validate() error {
	if d.CompanyID <= 0 {
		return ValidationError{Msg: "company_id is required"}
	}
	return nil
}
