package postgres_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/author"
	"github.com/avelasqz/library-management/internal/inventory"
	inventorypg "github.com/avelasqz/library-management/internal/inventory/postgres"
	"github.com/avelasqz/library-management/internal/library"
	"github.com/avelasqz/library-management/internal/material"
	"github.com/avelasqz/library-management/internal/section"
)

func TestInventoryPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Inventory Postgres Suite")
}

var _ = Describe("Inventory Repository", func() {
	var (
		db   *gorm.DB
		repo inventory.Repository
		lib  *library.Library
		mat  *material.Material
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&library.Library{},
			&author.Author{},
			&section.Section{},
			&material.Material{},
			&inventory.Inventory{},
		)
		Expect(err).NotTo(HaveOccurred())

		lib = &library.Library{Name: "Central", Address: "Main St 1"}
		Expect(db.Create(lib).Error).NotTo(HaveOccurred())

		a := &author.Author{Name: "Ursula K. Le Guin"}
		Expect(db.Create(a).Error).NotTo(HaveOccurred())
		s := &section.Section{Name: "Fiction", Capacity: 200}
		Expect(db.Create(s).Error).NotTo(HaveOccurred())

		mat = &material.Material{
			Type:      material.TypeBook,
			Title:     "The Dispossessed",
			CodRef:    "BK-0001",
			Price:     12.50,
			AuthorID:  a.ID,
			SectionID: s.ID,
		}
		Expect(db.Create(mat).Error).NotTo(HaveOccurred())

		repo = inventorypg.NewInventoryRepository(db)
	})

	Describe("Create", func() {
		It("should register a stock record", func() {
			inv := &inventory.Inventory{LibraryID: lib.ID, MaterialID: mat.ID, Stock: 3}

			Expect(repo.Create(inv)).To(Succeed())
			Expect(inv.ID).To(BeNumerically(">", 0))
		})

		It("should report a second record for the same pair as a conflict", func() {
			Expect(repo.Create(&inventory.Inventory{LibraryID: lib.ID, MaterialID: mat.ID})).To(Succeed())

			err := repo.Create(&inventory.Inventory{LibraryID: lib.ID, MaterialID: mat.ID})
			Expect(internal.IsConflict(err)).To(BeTrue())
		})
	})

	Describe("GetItem", func() {
		It("should find the record by library and material", func() {
			Expect(repo.Create(&inventory.Inventory{LibraryID: lib.ID, MaterialID: mat.ID, Stock: 5})).To(Succeed())

			inv, err := repo.GetItem(lib.ID, mat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Stock).To(Equal(5))
		})

		It("should report a missing pair as not found", func() {
			_, err := repo.GetItem(lib.ID, 999)
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("ListForLibrary", func() {
		It("should scope results to the library and report the total", func() {
			other := &library.Library{Name: "Branch", Address: "Side St 2"}
			Expect(db.Create(other).Error).NotTo(HaveOccurred())
			Expect(repo.Create(&inventory.Inventory{LibraryID: lib.ID, MaterialID: mat.ID, Stock: 1})).To(Succeed())
			Expect(repo.Create(&inventory.Inventory{LibraryID: other.ID, MaterialID: mat.ID, Stock: 2})).To(Succeed())

			items, total, err := repo.ListForLibrary(lib.ID, 0, 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(items).To(HaveLen(1))
			Expect(items[0].LibraryID).To(Equal(lib.ID))
		})
	})

	Describe("Update and Delete", func() {
		It("should persist a stock change", func() {
			inv := &inventory.Inventory{LibraryID: lib.ID, MaterialID: mat.ID, Stock: 1}
			Expect(repo.Create(inv)).To(Succeed())

			inv.Stock = 7
			Expect(repo.Update(inv)).To(Succeed())

			reloaded, err := repo.GetByID(inv.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reloaded.Stock).To(Equal(7))
		})

		It("should remove a record", func() {
			inv := &inventory.Inventory{LibraryID: lib.ID, MaterialID: mat.ID}
			Expect(repo.Create(inv)).To(Succeed())

			Expect(repo.Delete(inv.ID)).To(Succeed())

			_, err := repo.GetByID(inv.ID)
			Expect(internal.IsNotFound(err)).To(BeTrue())
		})
	})

	Describe("MaterialExists", func() {
		It("should check the materials table", func() {
			ok, err := repo.MaterialExists(mat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = repo.MaterialExists(999)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})
	})
})
