package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the role catalog and demo accounts",
	Long:  `Seed roles, permissions, role grants and demo users for development and testing.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormpg.New(gormpg.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm session: %v", err)
		}

		seedRoles(db)
		seedPermissions(db)
		seedGrants(db)
		seedUsers(db, cfg.Security.BCryptCost)

		fmt.Println("Seed complete")
	},
}

// roles: id 1 is the owner role granted during library bootstrap, the ids
// are fixed so grants below can reference them.
var seedRoleCatalog = []struct {
	ID   int64
	Name string
	Code string
	Desc string
}{
	{1, "Owner", "owner", "full control of a library"},
	{2, "Librarian", "librarian", "manages catalog and stock"},
	{3, "Member", "member", "reads the catalog"},
}

var seedPermissionCatalog = []struct {
	Name string
	Code string
	Desc string
}{
	{"Update library", "library:update", "edit library details"},
	{"Delete library", "library:delete", "remove a library"},
	{"Add library member", "library:member:add", "grant roles to users"},
	{"Read inventory", "inventory:read", "view stock records"},
	{"Create inventory", "inventory:create", "register stock records"},
	{"Update inventory", "inventory:update", "adjust stock"},
	{"Delete inventory", "inventory:delete", "remove stock records"},
	{"Create material", "material:create", "add catalog entries"},
	{"Update material", "material:update", "edit catalog entries"},
	{"Delete material", "material:delete", "remove catalog entries"},
}

// role code -> permission codes; owner gets everything
var seedGrantCatalog = map[string][]string{
	"librarian": {
		"inventory:read", "inventory:create", "inventory:update", "inventory:delete",
		"material:create", "material:update", "material:delete",
	},
	"member": {"inventory:read"},
}

func seedRoles(db *gorm.DB) {
	for _, r := range seedRoleCatalog {
		var exists int
		if err := db.Raw("SELECT 1 FROM roles WHERE id = ?", r.ID).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO roles (id, name, code, description) VALUES (?, ?, ?, ?)",
			r.ID, r.Name, r.Code, r.Desc).Error; err != nil {
			log.Fatalf("failed to insert role %s: %v", r.Code, err)
		}
		fmt.Println("Seeded role:", r.Code)
	}
}

func seedPermissions(db *gorm.DB) {
	for _, p := range seedPermissionCatalog {
		var exists int
		if err := db.Raw("SELECT 1 FROM permissions WHERE code = ?", p.Code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO permissions (name, code, description) VALUES (?, ?, ?)",
			p.Name, p.Code, p.Desc).Error; err != nil {
			log.Fatalf("failed to insert permission %s: %v", p.Code, err)
		}
		fmt.Println("Seeded permission:", p.Code)
	}
}

func seedGrants(db *gorm.DB) {
	grant := func(roleCode string, permCodes []string) {
		var roleID int64
		if err := db.Raw("SELECT id FROM roles WHERE code = ?", roleCode).Row().Scan(&roleID); err != nil {
			log.Fatalf("role not found %s: %v", roleCode, err)
		}
		for _, permCode := range permCodes {
			var permID int64
			if err := db.Raw("SELECT id FROM permissions WHERE code = ?", permCode).Row().Scan(&permID); err != nil {
				log.Fatalf("permission not found %s: %v", permCode, err)
			}
			var exists int
			if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?",
				roleID, permID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)",
				roleID, permID).Error; err != nil {
				log.Fatalf("failed to grant %s to %s: %v", permCode, roleCode, err)
			}
		}
		fmt.Println("Granted permissions to role:", roleCode)
	}

	allCodes := make([]string, 0, len(seedPermissionCatalog))
	for _, p := range seedPermissionCatalog {
		allCodes = append(allCodes, p.Code)
	}
	grant("owner", allCodes)
	for roleCode, permCodes := range seedGrantCatalog {
		grant(roleCode, permCodes)
	}
}

func seedUsers(db *gorm.DB, bcryptCost int) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcryptCost)

	demoUsers := []struct {
		Username string
		Email    string
	}{
		{"alice", "alice@mail.com"},
		{"bob", "bob@mail.com"},
	}

	for _, u := range demoUsers {
		var exists int
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
			fmt.Println("user already exists:", u.Email)
			continue
		}
		if err := db.Exec("INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
			u.Username, u.Email, string(hash)).Error; err != nil {
			log.Fatalf("failed to insert user %s: %v", u.Email, err)
		}
		fmt.Println("Seeded user:", u.Email)
	}
}
