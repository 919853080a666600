package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/library"
	librarypg "github.com/avelasqz/library-management/internal/library/postgres"
	"github.com/avelasqz/library-management/internal/role"
	"github.com/avelasqz/library-management/internal/user"
)

func TestLibraryPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Library Postgres Suite")
}

var _ = Describe("Library Repository", func() {
	var (
		db   *gorm.DB
		repo library.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&user.User{},
			&role.Role{},
			&library.Library{},
			&library.Membership{},
			&library.RoleAssignment{},
		)
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&user.User{Username: "alice", Email: "alice@mail.com", PasswordHash: "x"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&role.Role{Name: "Owner", Code: "owner"}).Error).NotTo(HaveOccurred())

		repo = librarypg.NewLibraryRepository(db)
	})

	Describe("Create", func() {
		It("should create a library and assign an id", func() {
			l := &library.Library{Name: "Central", Address: "Main St 1"}

			Expect(repo.Create(l)).To(Succeed())
			Expect(l.ID).To(BeNumerically(">", 0))
		})

		It("should report a duplicate name as a conflict", func() {
			Expect(repo.Create(&library.Library{Name: "Central", Address: "Main St 1"})).To(Succeed())

			err := repo.Create(&library.Library{Name: "Central", Address: "Other St 2"})
			Expect(internal.IsConflict(err)).To(BeTrue())
		})
	})

	Describe("lookups", func() {
		BeforeEach(func() {
			Expect(repo.Create(&library.Library{Name: "Central", Address: "Main St 1"})).To(Succeed())
		})

		It("should find a library by name and by address", func() {
			byName, err := repo.GetByName("Central")
			Expect(err).NotTo(HaveOccurred())

			byAddress, err := repo.GetByAddress("Main St 1")
			Expect(err).NotTo(HaveOccurred())
			Expect(byAddress.ID).To(Equal(byName.ID))
		})

		It("should report a missing library as not found", func() {
			_, err := repo.GetByID(999)
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("CreateMembershipWithRole", func() {
		var lib *library.Library

		BeforeEach(func() {
			lib = &library.Library{Name: "Central", Address: "Main St 1"}
			Expect(repo.Create(lib)).To(Succeed())
		})

		It("should write membership and assignment together", func() {
			m := &library.Membership{LibraryID: lib.ID, UserID: 1}
			a := &library.RoleAssignment{UserID: 1, RoleID: 1, LibraryID: lib.ID}

			Expect(repo.CreateMembershipWithRole(m, a)).To(Succeed())

			_, err := repo.GetMembership(lib.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.GetAssignment(1, 1, lib.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should roll the membership back when the assignment write fails", func() {
			m := &library.Membership{LibraryID: lib.ID, UserID: 1}
			a := &library.RoleAssignment{UserID: 1, RoleID: 1, LibraryID: lib.ID}
			Expect(repo.CreateAssignment(a)).To(Succeed())

			// duplicate assignment forces the transaction to fail
			err := repo.CreateMembershipWithRole(m, &library.RoleAssignment{UserID: 1, RoleID: 1, LibraryID: lib.ID})
			Expect(err).To(HaveOccurred())

			_, err = repo.GetMembership(lib.ID, 1)
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})

		It("should report a duplicate role grant as a conflict", func() {
			a := &library.RoleAssignment{UserID: 1, RoleID: 1, LibraryID: lib.ID}
			Expect(repo.CreateAssignment(a)).To(Succeed())

			err := repo.CreateAssignment(&library.RoleAssignment{UserID: 1, RoleID: 1, LibraryID: lib.ID})
			Expect(internal.IsConflict(err)).To(BeTrue())
		})
	})

	Describe("Members", func() {
		It("should list the users joined to the library", func() {
			lib := &library.Library{Name: "Central", Address: "Main St 1"}
			Expect(repo.Create(lib)).To(Succeed())
			Expect(repo.CreateMembershipWithRole(
				&library.Membership{LibraryID: lib.ID, UserID: 1},
				&library.RoleAssignment{UserID: 1, RoleID: 1, LibraryID: lib.ID},
			)).To(Succeed())

			members, err := repo.Members(lib.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(members).To(HaveLen(1))
			Expect(members[0].Username).To(Equal("alice"))
		})
	})

	Describe("Delete", func() {
		It("should remove the library with its memberships and assignments", func() {
			lib := &library.Library{Name: "Central", Address: "Main St 1"}
			Expect(repo.Create(lib)).To(Succeed())
			Expect(repo.CreateMembershipWithRole(
				&library.Membership{LibraryID: lib.ID, UserID: 1},
				&library.RoleAssignment{UserID: 1, RoleID: 1, LibraryID: lib.ID},
			)).To(Succeed())

			Expect(repo.Delete(lib.ID)).To(Succeed())

			_, err := repo.GetByID(lib.ID)
			Expect(internal.IsNotFound(err)).To(BeTrue())
			_, err = repo.GetMembership(lib.ID, 1)
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})
	})
})
