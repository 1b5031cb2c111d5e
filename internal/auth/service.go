package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/frahmantamala/cash-pro/internal/core/events"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type TokenGenerator interface {
	GenerateSessionToken(personID int64, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service performs authentication business logic: credentials, session tokens
// and the membership list that the navigation layer consumes.
type Service struct {
	repo       RepositoryAPI
	tokenGen   TokenGenerator
	bus        *events.EventBus
	bcryptCost int
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, bus *events.EventBus, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		tokenGen:   tokenGen,
		bus:        bus,
		bcryptCost: bcryptCost,
	}
}

func (s *Service) Login(dto LoginDTO) (*AuthState, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	rec, err := s.repo.GetByEmailOrUsername(dto.EmailOrUsername)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !rec.IsActive {
		return nil, "", ErrPersonInactive
	}

	state, err := s.StateForPerson(rec.ID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokenGen.GenerateSessionToken(rec.ID, rec.Email)
	if err != nil {
		return nil, "", err
	}

	s.publishChanged(state)
	return state, token, nil
}

func (s *Service) Register(dto RegisterDTO) (*AuthState, string, error) {
	if err := dto.Validate(); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	var firstName, lastName *string
	if dto.FirstName != "" {
		firstName = &dto.FirstName
	}
	if dto.LastName != "" {
		lastName = &dto.LastName
	}

	rec, err := s.repo.CreatePerson(dto.Email, string(hash), firstName, lastName)
	if err != nil {
		return nil, "", err
	}

	// A freshly registered person has no memberships yet; the guard will
	// route them to organization setup.
	state, err := s.StateForPerson(rec.ID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokenGen.GenerateSessionToken(rec.ID, rec.Email)
	if err != nil {
		return nil, "", err
	}

	s.publishChanged(state)
	return state, token, nil
}

func (s *Service) Logout(personID int64) error {
	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewSessionClearedEvent())
	}
	return nil
}

// StateForPerson assembles the full auth payload: person, memberships and the
// current company pointer. The pointer stays nil unless a membership was
// explicitly marked default; callers must not assume a selection exists.
func (s *Service) StateForPerson(personID int64) (*AuthState, error) {
	rec, err := s.repo.GetPersonByID(personID)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if !rec.IsActive {
		return nil, ErrPersonInactive
	}

	memberships, err := s.repo.GetMemberships(personID)
	if err != nil {
		return nil, fmt.Errorf("load memberships: %w", err)
	}

	companies := make([]Company, 0, len(memberships))
	var currentCompanyID *int64
	for _, m := range memberships {
		companies = append(companies, m.Company)
		if m.IsDefault && currentCompanyID == nil {
			id := m.Company.ID
			currentCompanyID = &id
		}
	}

	person := rec.Person
	return &AuthState{
		Person:           &person,
		Companies:        companies,
		CurrentCompanyID: currentCompanyID,
		IsImpersonating:  false,
	}, nil
}

func (s *Service) SwitchCompany(personID, companyID int64) error {
	if _, err := s.repo.GetMembershipRole(personID, companyID); err != nil {
		return ErrNotMember
	}

	if err := s.repo.SetDefaultCompany(personID, companyID); err != nil {
		return fmt.Errorf("switch company: %w", err)
	}

	if s.bus != nil {
		_ = s.bus.Publish(context.Background(), events.NewCompanySwitchedEvent(personID, companyID))
	}
	return nil
}

func (s *Service) ValidateSessionToken(tokenString string) (*Claims, error) {
	return s.tokenGen.ValidateToken(tokenString)
}

func (s *Service) RoleInCompany(personID, companyID int64) (string, error) {
	return s.repo.GetMembershipRole(personID, companyID)
}

func (s *Service) publishChanged(state *AuthState) {
	if s.bus == nil || state.Person == nil {
		return
	}
	_ = s.bus.Publish(context.Background(), events.NewSessionChangedEvent(state.Person.ID, len(state.Companies)))
}

// JWTTokenGenerator signs session tokens carried in the session cookie.
type JWTTokenGenerator struct {
	Secret []byte
	TTL    time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret: []byte(secret),
		TTL:    ttl,
	}
}

func (j *JWTTokenGenerator) GenerateSessionToken(personID int64, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		PersonID: strconv.FormatInt(personID, 10),
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(personID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
