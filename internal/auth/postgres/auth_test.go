package postgres_test

import (
	"testing"

	"github.com/frahmantamala/cash-pro/internal/auth"
	authPostgres "github.com/frahmantamala/cash-pro/internal/auth/postgres"
	companyModel "github.com/frahmantamala/cash-pro/internal/core/datamodel/company"
	personModel "github.com/frahmantamala/cash-pro/internal/core/datamodel/person"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAuthPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Postgres Suite")
}

var _ = Describe("Auth PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo auth.RepositoryAPI
	)

	strPtr := func(s string) *string { return &s }

	seedPerson := func(email, username string) int64 {
		p := personModel.Person{
			Email:        email,
			Username:     strPtr(username),
			PasswordHash: "hashed",
			IsActive:     true,
		}
		Expect(db.Create(&p).Error).NotTo(HaveOccurred())
		return p.ID
	}

	seedCompany := func(name, slug string) int64 {
		c := companyModel.Company{Name: name, Slug: slug}
		Expect(db.Create(&c).Error).NotTo(HaveOccurred())
		return c.ID
	}

	seedMembership := func(personID, companyID int64, role string, isDefault bool) {
		pc := companyModel.PersonCompany{
			PersonID:  personID,
			CompanyID: companyID,
			Role:      role,
			IsDefault: isDefault,
		}
		Expect(db.Create(&pc).Error).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&personModel.Person{}, &companyModel.Company{}, &companyModel.PersonCompany{})
		Expect(err).NotTo(HaveOccurred())

		repo = authPostgres.NewRepository(db)
	})

	Describe("GetByEmailOrUsername", func() {
		It("finds a person by lowercased email", func() {
			seedPerson("person@example.com", "person")

			rec, err := repo.GetByEmailOrUsername("Person@Example.com")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Email).To(Equal("person@example.com"))
			Expect(rec.PasswordHash).To(Equal("hashed"))
		})

		It("finds a person by username", func() {
			seedPerson("person@example.com", "person")

			rec, err := repo.GetByEmailOrUsername("person")

			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Email).To(Equal("person@example.com"))
		})

		It("returns invalid credentials for an unknown identifier", func() {
			_, err := repo.GetByEmailOrUsername("nobody@example.com")

			Expect(err).To(MatchError(auth.ErrInvalidCredentials))
		})
	})

	Describe("CreatePerson", func() {
		It("stores the person with a lowercased email", func() {
			rec, err := repo.CreatePerson("New@Example.com", "hashed", strPtr("New"), nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Email).To(Equal("new@example.com"))
			Expect(rec.IsActive).To(BeTrue())
		})

		It("refuses a duplicate email", func() {
			seedPerson("person@example.com", "person")

			_, err := repo.CreatePerson("person@example.com", "hashed", nil, nil)

			Expect(err).To(MatchError(auth.ErrEmailTaken))
		})
	})

	Describe("GetMemberships", func() {
		It("returns memberships in creation order with role and default flag", func() {
			personID := seedPerson("person@example.com", "person")
			acme := seedCompany("Acme", "acme")
			globex := seedCompany("Globex", "globex")
			seedMembership(personID, acme, "owner", false)
			seedMembership(personID, globex, "member", true)

			memberships, err := repo.GetMemberships(personID)

			Expect(err).NotTo(HaveOccurred())
			Expect(memberships).To(HaveLen(2))
			Expect(memberships[0].Company.Slug).To(Equal("acme"))
			Expect(memberships[0].Role).To(Equal("owner"))
			Expect(memberships[0].IsDefault).To(BeFalse())
			Expect(memberships[1].Company.Slug).To(Equal("globex"))
			Expect(memberships[1].IsDefault).To(BeTrue())
		})

		It("returns an empty list for a person without companies", func() {
			personID := seedPerson("person@example.com", "person")

			memberships, err := repo.GetMemberships(personID)

			Expect(err).NotTo(HaveOccurred())
			Expect(memberships).To(BeEmpty())
		})
	})

	Describe("SetDefaultCompany", func() {
		It("moves the default flag atomically", func() {
			personID := seedPerson("person@example.com", "person")
			acme := seedCompany("Acme", "acme")
			globex := seedCompany("Globex", "globex")
			seedMembership(personID, acme, "owner", true)
			seedMembership(personID, globex, "member", false)

			Expect(repo.SetDefaultCompany(personID, globex)).To(Succeed())

			memberships, err := repo.GetMemberships(personID)
			Expect(err).NotTo(HaveOccurred())
			for _, m := range memberships {
				Expect(m.IsDefault).To(Equal(m.Company.ID == globex))
			}
		})

		It("refuses a company without a membership and keeps the old default", func() {
			personID := seedPerson("person@example.com", "person")
			acme := seedCompany("Acme", "acme")
			seedMembership(personID, acme, "owner", true)

			err := repo.SetDefaultCompany(personID, 999)

			Expect(err).To(MatchError(auth.ErrNotMember))
			memberships, err := repo.GetMemberships(personID)
			Expect(err).NotTo(HaveOccurred())
			Expect(memberships[0].IsDefault).To(BeTrue())
		})
	})

	Describe("GetMembershipRole", func() {
		It("returns the role for a member", func() {
			personID := seedPerson("person@example.com", "person")
			acme := seedCompany("Acme", "acme")
			seedMembership(personID, acme, "admin", false)

			role, err := repo.GetMembershipRole(personID, acme)

			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(Equal("admin"))
		})

		It("returns not-member otherwise", func() {
			personID := seedPerson("person@example.com", "person")

			_, err := repo.GetMembershipRole(personID, 999)

			Expect(err).To(MatchError(auth.ErrNotMember))
		})
	})
})
