package session

import (
	"context"
	"errors"

	"github.com/frahmantamala/cash-pro/internal/auth"
)

// Snapshot is the serialized form of session state: the exact payload shape
// the auth collaborator returns and the blob the store persists.
type Snapshot struct {
	Person           *auth.Person   `json:"person"`
	Companies        []auth.Company `json:"companies"`
	CurrentCompanyID *int64         `json:"current_company_id"`
	IsImpersonating  bool           `json:"is_impersonating"`
}

// RegisterParams are the fields collected by the registration form.
type RegisterParams struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthClient is the authentication collaborator the session state mutates
// through. Implementations are bound to one caller's credentials.
type AuthClient interface {
	Login(ctx context.Context, emailOrUsername, password string) (*Snapshot, error)
	Register(ctx context.Context, params RegisterParams) (*Snapshot, error)
	Logout(ctx context.Context) error
	CurrentIdentity(ctx context.Context) (*Snapshot, error)
	SwitchCompany(ctx context.Context, companyID int64) error
}

// BlobStore is the persistence collaborator: one serialized session blob per
// state, used only to rehydrate across restarts. It is not a trust boundary;
// the auth collaborator remains the source of truth.
type BlobStore interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, blob []byte) error
	Remove(ctx context.Context) error
}

// ErrNoStoredState is returned by BlobStore.Get when nothing is persisted.
var ErrNoStoredState = errors.New("no stored session state")
