package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/role"
	rolepg "github.com/avelasqz/library-management/internal/role/postgres"
)

func TestRolePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Postgres Suite")
}

var _ = Describe("Role Repository", func() {
	var (
		db   *gorm.DB
		repo role.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&role.Role{}, &role.Permission{}, &role.RolePermission{})
		Expect(err).NotTo(HaveOccurred())

		repo = rolepg.NewRoleRepository(db)
	})

	Describe("roles", func() {
		It("should create and look up a role by code", func() {
			Expect(repo.Create(&role.Role{Name: "Librarian", Code: "librarian"})).To(Succeed())

			found, err := repo.GetByCode("librarian")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Librarian"))
		})

		It("should report a duplicate code as a conflict", func() {
			Expect(repo.Create(&role.Role{Name: "Librarian", Code: "librarian"})).To(Succeed())

			err := repo.Create(&role.Role{Name: "Other", Code: "librarian"})
			Expect(internal.IsConflict(err)).To(BeTrue())
		})

		It("should list roles in id order", func() {
			Expect(repo.Create(&role.Role{Name: "Owner", Code: "owner"})).To(Succeed())
			Expect(repo.Create(&role.Role{Name: "Member", Code: "member"})).To(Succeed())

			roles, err := repo.List()
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(2))
			Expect(roles[0].Code).To(Equal("owner"))
		})
	})

	Describe("permission grants", func() {
		var librarian *role.Role
		var read *role.Permission

		BeforeEach(func() {
			librarian = &role.Role{Name: "Librarian", Code: "librarian"}
			Expect(repo.Create(librarian)).To(Succeed())
			read = &role.Permission{Name: "Read inventory", Code: "inventory:read"}
			Expect(repo.CreatePermission(read)).To(Succeed())
		})

		It("should attach and list a role's permissions", func() {
			Expect(repo.AttachPermission(librarian.ID, read.ID)).To(Succeed())

			permissions, err := repo.PermissionsForRole(librarian.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(HaveLen(1))
			Expect(permissions[0].Code).To(Equal("inventory:read"))
		})

		It("should report a duplicate grant as a conflict", func() {
			Expect(repo.AttachPermission(librarian.ID, read.ID)).To(Succeed())

			err := repo.AttachPermission(librarian.ID, read.ID)
			Expect(internal.IsConflict(err)).To(BeTrue())
		})

		It("should detach a granted permission", func() {
			Expect(repo.AttachPermission(librarian.ID, read.ID)).To(Succeed())
			Expect(repo.DetachPermission(librarian.ID, read.ID)).To(Succeed())

			permissions, err := repo.PermissionsForRole(librarian.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(permissions).To(BeEmpty())
		})

		It("should delete a role together with its grants", func() {
			Expect(repo.AttachPermission(librarian.ID, read.ID)).To(Succeed())

			Expect(repo.Delete(librarian.ID)).To(Succeed())

			_, err := repo.GetByID(librarian.ID)
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})
	})
})
