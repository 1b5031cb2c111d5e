package admin

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
}

func NewService(repo RepositoryAPI, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

func (s *Service) ListPeople() ([]PersonSummary, error) {
	people, err := s.repo.ListPeople()
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

func (s *Service) CreatePerson(dto CreatePersonDTO) (*PersonSummary, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Username = strings.TrimSpace(dto.Username)

	taken, err := s.repo.EmailOrUsernameTaken(dto.Email, dto.Username)
	if err != nil {
		return nil, fmt.Errorf("check uniqueness: %w", err)
	}
	if taken {
		return nil, ValidationError{Msg: "email or username already in use"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	person, err := s.repo.CreatePerson(dto, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return person, nil
}

func (s *Service) ListCompanies() ([]CompanySummary, error) {
	companies, err := s.repo.ListCompanies()
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}
