package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with subscription plans, permissions and a super admin account.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			fmt.Println("Clearing existing seed data...")
			for _, table := range []string{"role_permissions", "person_roles", "roles", "permissions", "subscription_plans"} {
				if _, err := db.Exec("DELETE FROM " + table); err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		// Subscription plans
		// Prices are stored in cents.
		plans := []struct {
			Name     string
			Tier     string
			Cycle    string
			Price    int64
			Features string
		}{
			{"Starter", "starter", "monthly", 2900, `["invoicing","customers","payments","reports"]`},
			{"Starter Annual", "starter", "annual", 29000, `["invoicing","customers","payments","reports"]`},
			{"Professional", "professional", "monthly", 9900, `["invoicing","customers","payments","reports","analytics","integrations"]`},
			{"Professional Annual", "professional", "annual", 99000, `["invoicing","customers","payments","reports","analytics","integrations"]`},
			{"Enterprise", "enterprise", "monthly", 29900, `["invoicing","customers","payments","reports","analytics","integrations","audit_logs","api_keys"]`},
			{"Enterprise Annual", "enterprise", "annual", 299000, `["invoicing","customers","payments","reports","analytics","integrations","audit_logs","api_keys"]`},
		}

		for _, p := range plans {
			var exists int
			err := db.QueryRow("SELECT 1 FROM subscription_plans WHERE tier = $1 AND billing_cycle = $2", p.Tier, p.Cycle).Scan(&exists)
			if err == nil {
				continue
			}
			_, err = db.Exec(
				"INSERT INTO subscription_plans (name, tier, billing_cycle, price, currency, features, is_active, created_at) VALUES ($1, $2, $3, $4, 'USD', $5, true, now())",
				p.Name, p.Tier, p.Cycle, p.Price, p.Features,
			)
			if err != nil {
				log.Fatalf("failed to insert plan %s: %v", p.Name, err)
			}
			fmt.Println("Seeded plan:", p.Name)
		}

		// Permissions checked by the navigation item gates
		permissions := []struct {
			Resource string
			Action   string
			Desc     string
		}{
			{"invoice", "read", "View invoices"},
			{"invoice", "write", "Create and edit invoices"},
			{"customer", "read", "View customers"},
			{"customer", "write", "Create and edit customers"},
			{"payment", "read", "View payments"},
			{"payment", "write", "Record payments"},
			{"report", "read", "View reports"},
			{"company", "manage", "Manage company settings"},
		}

		for _, p := range permissions {
			var exists int
			err := db.QueryRow("SELECT 1 FROM permissions WHERE resource_type = $1 AND action = $2", p.Resource, p.Action).Scan(&exists)
			if err == nil {
				continue
			}
			_, err = db.Exec(
				"INSERT INTO permissions (resource_type, action, description) VALUES ($1, $2, $3)",
				p.Resource, p.Action, p.Desc,
			)
			if err != nil {
				log.Fatalf("failed to insert permission %s:%s: %v", p.Resource, p.Action, err)
			}
			fmt.Printf("Seeded permission: %s:%s\n", p.Resource, p.Action)
		}

		// Super admin account
		adminEmail := "admin@cashpro.local"
		var exists int
		err = db.QueryRow("SELECT 1 FROM people WHERE email = $1", adminEmail).Scan(&exists)
		if err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("failed to hash password: %v", err)
			}
			_, err = db.Exec(
				"INSERT INTO people (email, username, password_hash, first_name, last_name, is_active, is_verified, is_super_admin, created_at, updated_at) VALUES ($1, 'admin', $2, 'Super', 'Admin', true, true, true, now(), now())",
				adminEmail, string(hash),
			)
			if err != nil {
				log.Fatalf("failed to insert super admin: %v", err)
			}
			fmt.Println("Seeded super admin:", adminEmail)
		} else {
			fmt.Println("super admin already exists")
		}

		fmt.Println("Seeding complete")
	},
}
