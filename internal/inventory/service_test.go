package inventory

import (
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/auth"
)

func TestInventory(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Inventory Module Suite")
}

type mockGate struct {
	denied       bool
	firstLibrary int64
	lastLibrary  *int64
	lastCode     string
}

func (g *mockGate) Require(user *auth.User, libraryID *int64, code string) error {
	g.lastLibrary = libraryID
	g.lastCode = code
	if g.denied {
		return internal.NewAuthorizationError("permission denied for this library")
	}
	return nil
}

func (g *mockGate) FirstLibrary(user *auth.User) (int64, error) {
	if g.firstLibrary == 0 {
		return 0, internal.NewAuthorizationError("no libraries found for user")
	}
	return g.firstLibrary, nil
}

type mockRepository struct {
	items     map[int64]*Inventory
	materials map[int64]bool
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		items:     map[int64]*Inventory{},
		materials: map[int64]bool{10: true, 11: true},
	}
}

func (m *mockRepository) Create(inv *Inventory) error {
	m.nextID++
	inv.ID = m.nextID
	m.items[inv.ID] = inv
	return nil
}

func (m *mockRepository) GetByID(id int64) (*Inventory, error) {
	if inv, ok := m.items[id]; ok {
		return inv, nil
	}
	return nil, internal.NewNotFoundError("Inventory", "id", id)
}

func (m *mockRepository) GetItem(libraryID, materialID int64) (*Inventory, error) {
	for _, inv := range m.items {
		if inv.LibraryID == libraryID && inv.MaterialID == materialID {
			return inv, nil
		}
	}
	return nil, internal.NewNotFoundError("Inventory", "material_id", materialID)
}

func (m *mockRepository) ListForLibrary(libraryID int64, offset, limit int) ([]Inventory, int64, error) {
	var out []Inventory
	for _, inv := range m.items {
		if inv.LibraryID == libraryID {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Update(inv *Inventory) error {
	m.items[inv.ID] = inv
	return nil
}

func (m *mockRepository) Delete(id int64) error {
	delete(m.items, id)
	return nil
}

func (m *mockRepository) MaterialExists(materialID int64) (bool, error) {
	return m.materials[materialID], nil
}

var _ = ginkgo.Describe("InventoryService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		gate     *mockGate
		caller   *auth.User
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		gate = &mockGate{firstLibrary: 100}
		service = NewService(mockRepo, gate)
		caller = &auth.User{ID: 1, Username: "alice"}
	})

	ginkgo.Describe("Add", func() {
		ginkgo.It("should register a stock record in the named library", func() {
			inv, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10, Stock: 3})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(inv.ID).To(gomega.BeNumerically(">", 0))
			gomega.Expect(gate.lastCode).To(gomega.Equal("inventory:create"))
			gomega.Expect(*gate.lastLibrary).To(gomega.Equal(int64(100)))
		})

		ginkgo.It("should reject a second record for the same pair", func() {
			_, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10})
			gomega.Expect(internal.IsConflict(err)).To(gomega.BeTrue())
		})

		ginkgo.It("should report an unknown material as not found", func() {
			_, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 99})
			gomega.Expect(internal.IsNotFound(err)).To(gomega.BeTrue())
		})

		ginkgo.It("should refuse when the gate denies", func() {
			gate.denied = true

			_, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
		})
	})

	ginkgo.Describe("ListForLibrary", func() {
		ginkgo.It("should fall back to the caller's first library when none is named", func() {
			_, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10, Stock: 1})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			items, total, err := service.ListForLibrary(caller, nil, 0, 30)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(total).To(gomega.Equal(int64(1)))
			gomega.Expect(items[0].LibraryID).To(gomega.Equal(int64(100)))
		})
	})

	ginkgo.Describe("Update and Delete", func() {
		ginkgo.It("should gate updates on the record's own library", func() {
			inv, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10, Stock: 1})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			stock := 9
			updated, err := service.Update(caller, inv.ID, InventoryPatch{Stock: &stock})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Stock).To(gomega.Equal(9))
			gomega.Expect(gate.lastCode).To(gomega.Equal("inventory:update"))
			gomega.Expect(*gate.lastLibrary).To(gomega.Equal(int64(100)))
		})

		ginkgo.It("should reject a negative stock patch", func() {
			inv, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10, Stock: 1})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			stock := -1
			_, err = service.Update(caller, inv.ID, InventoryPatch{Stock: &stock})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("should delete after the gate allows", func() {
			inv, err := service.Add(caller, CreateInventoryDTO{LibraryID: 100, MaterialID: 10})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Delete(caller, inv.ID)).To(gomega.Succeed())
			gomega.Expect(gate.lastCode).To(gomega.Equal("inventory:delete"))
		})
	})
})
