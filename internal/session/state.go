package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/frahmantamala/cash-pro/internal/auth"
	"github.com/frahmantamala/cash-pro/internal/core/events"
)

// State holds the authenticated identity, the companies it belongs to, the
// current company pointer and the impersonation flag. All four fields are
// populated and cleared together; no reader can observe a partial update.
//
// State is an explicitly constructed object passed to its consumers; there is
// no package-level instance.
type State struct {
	mu sync.Mutex

	client AuthClient
	store  BlobStore
	bus    *events.EventBus
	logger *slog.Logger

	person           *auth.Person
	companies        []auth.Company
	currentCompanyID *int64
	isImpersonating  bool

	// fetching suppresses concurrent identity refreshes: one in flight,
	// latecomers are no-ops.
	fetching bool
}

func NewState(client AuthClient, store BlobStore, bus *events.EventBus, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	s := &State{
		client: client,
		store:  store,
		bus:    bus,
		logger: logger,
	}
	s.rehydrate()
	return s
}

// NewStateFromSnapshot builds a read-mostly state around an already resolved
// snapshot, for per-request guard evaluation where the identity was resolved
// upstream.
func NewStateFromSnapshot(snap *Snapshot, client AuthClient, logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	s := &State{client: client, logger: logger}
	if snap != nil {
		s.applyLocked(snap)
	}
	return s
}

func (s *State) Login(ctx context.Context, emailOrUsername, password string) error {
	snap, err := s.client.Login(ctx, emailOrUsername, password)
	if err != nil {
		// Login failures surface to the caller; current state is untouched.
		return err
	}

	s.mu.Lock()
	s.applyLocked(snap)
	s.mu.Unlock()

	s.persist(ctx)
	s.publishChanged(ctx)
	return nil
}

func (s *State) Register(ctx context.Context, params RegisterParams) error {
	snap, err := s.client.Register(ctx, params)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.applyLocked(snap)
	s.mu.Unlock()

	s.persist(ctx)
	s.publishChanged(ctx)
	return nil
}

func (s *State) Logout(ctx context.Context) error {
	err := s.client.Logout(ctx)

	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()

	s.discardStored(ctx)
	if s.bus != nil {
		_ = s.bus.PublishSync(ctx, events.NewSessionClearedEvent())
	}
	return err
}

// FetchCurrentUser reconciles state against the auth collaborator. A failed
// fetch means the session is gone server-side: state and stored blob are
// cleared. While a fetch is in flight, further calls return immediately
// without waiting on it.
func (s *State) FetchCurrentUser(ctx context.Context) error {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return nil
	}
	s.fetching = true
	s.mu.Unlock()

	snap, err := s.client.CurrentIdentity(ctx)

	s.mu.Lock()
	if err != nil {
		s.clearLocked()
	} else {
		s.applyLocked(snap)
	}
	s.fetching = false
	s.mu.Unlock()

	if err != nil {
		s.discardStored(ctx)
		return err
	}

	s.persist(ctx)
	s.publishChanged(ctx)
	return nil
}

func (s *State) SwitchCompany(ctx context.Context, companyID int64) error {
	if err := s.client.SwitchCompany(ctx, companyID); err != nil {
		return err
	}

	s.mu.Lock()
	id := companyID
	s.currentCompanyID = &id
	s.mu.Unlock()

	return s.FetchCurrentUser(ctx)
}

func (s *State) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.person != nil
}

func (s *State) IsSuperAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.person != nil && s.person.IsSuperAdmin
}

func (s *State) HasAnyCompany() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies) > 0
}

func (s *State) IsFetching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetching
}

func (s *State) Person() *auth.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.person
}

func (s *State) Companies() []auth.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]auth.Company, len(s.companies))
	copy(out, s.companies)
	return out
}

// CurrentCompany returns the explicitly selected company, or nil. A non-empty
// membership list with no explicit selection yields nil; callers must not
// assume a default.
func (s *State) CurrentCompany() *auth.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentCompanyID == nil {
		return nil
	}
	for i := range s.companies {
		if s.companies[i].ID == *s.currentCompanyID {
			c := s.companies[i]
			return &c
		}
	}
	return nil
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	companies := make([]auth.Company, len(s.companies))
	copy(companies, s.companies)
	return Snapshot{
		Person:           s.person,
		Companies:        companies,
		CurrentCompanyID: s.currentCompanyID,
		IsImpersonating:  s.isImpersonating,
	}
}

func (s *State) applyLocked(snap *Snapshot) {
	s.person = snap.Person
	s.companies = snap.Companies
	s.currentCompanyID = snap.CurrentCompanyID
	s.isImpersonating = snap.IsImpersonating
}

func (s *State) clearLocked() {
	s.person = nil
	s.companies = nil
	s.currentCompanyID = nil
	s.isImpersonating = false
}

// rehydrate loads a previously stored blob. The result is provisional until
// FetchCurrentUser confirms the server still honors the session; storage
// failures are treated as no stored state.
func (s *State) rehydrate() {
	if s.store == nil {
		return
	}

	blob, err := s.store.Get(context.Background())
	if err != nil {
		if err != ErrNoStoredState {
			s.logger.Warn("failed to load stored session state", "error", err)
		}
		return
	}

	var snap Snapshot
	if err := json.Unmarshal(blob, &snap); err != nil {
		s.logger.Warn("stored session state is corrupt, discarding", "error", err)
		s.discardStored(context.Background())
		return
	}

	if snap.Person == nil {
		return
	}

	s.mu.Lock()
	s.applyLocked(&snap)
	s.mu.Unlock()
}

func (s *State) persist(ctx context.Context) {
	if s.store == nil {
		return
	}

	snap := s.Snapshot()
	if snap.Person == nil {
		return
	}

	blob, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("failed to serialize session state", "error", err)
		return
	}
	if err := s.store.Set(ctx, blob); err != nil {
		s.logger.Warn("failed to persist session state", "error", err)
	}
}

func (s *State) discardStored(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Remove(ctx); err != nil {
		s.logger.Warn("failed to clear stored session state", "error", err)
	}
}

func (s *State) publishChanged(ctx context.Context) {
	if s.bus == nil {
		return
	}
	snap := s.Snapshot()
	if snap.Person == nil {
		return
	}
	_ = s.bus.PublishSync(ctx, events.NewSessionChangedEvent(snap.Person.ID, len(snap.Companies)))
}
