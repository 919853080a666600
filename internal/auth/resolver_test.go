package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/avelasqz/library-management/internal"
)

var _ = ginkgo.Describe("Resolver", func() {
	var (
		resolver *Resolver
		mockRepo *mockRepository
	)

	readCatalog := Permission{ID: 10, Name: "Read inventory", Code: "inventory:read"}
	writeCatalog := Permission{ID: 11, Name: "Create inventory", Code: "inventory:create"}
	updateLibrary := Permission{ID: 12, Name: "Update library", Code: "library:update"}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		resolver = NewResolver(mockRepo)
	})

	ginkgo.Describe("RolesForUser", func() {
		ginkgo.It("should return the assignments the user holds in the library", func() {
			mockRepo.join(1, 100)
			mockRepo.assign(1, 5, 100)

			assignments, err := resolver.RolesForUser(1, 100)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(assignments).To(gomega.HaveLen(1))
			gomega.Expect(assignments[0].RoleID).To(gomega.Equal(int64(5)))
		})

		ginkgo.It("should deny a library the user is not tied to without revealing it", func() {
			mockRepo.join(1, 100)

			_, err := resolver.RolesForUser(1, 999)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
		})

		ginkgo.It("should report a member with no assignments as roles not found", func() {
			mockRepo.join(1, 100)

			_, err := resolver.RolesForUser(1, 100)

			gomega.Expect(internal.IsNotFound(err)).To(gomega.BeTrue())
		})

		ginkgo.It("should report an unknown user as not found", func() {
			_, err := resolver.RolesForUser(42, 100)

			gomega.Expect(internal.IsNotFound(err)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("PermissionsForUser", func() {
		ginkgo.It("should union permissions across roles without duplicates", func() {
			mockRepo.join(1, 100)
			mockRepo.assign(1, 5, 100)
			mockRepo.assign(1, 6, 100)
			mockRepo.grant(5, readCatalog)
			mockRepo.grant(5, writeCatalog)
			mockRepo.grant(6, readCatalog)
			mockRepo.grant(6, updateLibrary)

			permissions, err := resolver.PermissionsForUser(1, 100)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(permissions).To(gomega.HaveLen(3))
		})

		ginkgo.It("should resolve the same closure on repeated calls", func() {
			mockRepo.join(1, 100)
			mockRepo.assign(1, 5, 100)
			mockRepo.grant(5, readCatalog)

			first, err := resolver.PermissionsForUser(1, 100)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			second, err := resolver.PermissionsForUser(1, 100)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(second).To(gomega.Equal(first))
		})

		ginkgo.It("should shrink when an assignment is removed", func() {
			mockRepo.join(1, 100)
			mockRepo.assign(1, 5, 100)
			mockRepo.assign(1, 6, 100)
			mockRepo.grant(5, readCatalog)
			mockRepo.grant(6, writeCatalog)

			before, err := resolver.PermissionsForUser(1, 100)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(before).To(gomega.HaveLen(2))

			mockRepo.assignments[1][100] = mockRepo.assignments[1][100][:1]

			after, err := resolver.PermissionsForUser(1, 100)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(after).To(gomega.HaveLen(1))
			gomega.Expect(after[0].Code).To(gomega.Equal("inventory:read"))
		})
	})

	ginkgo.Describe("HasPermission", func() {
		ginkgo.It("should grant a permission the user holds through a role", func() {
			mockRepo.join(1, 100)
			mockRepo.assign(1, 5, 100)
			mockRepo.grant(5, readCatalog)

			ok, err := resolver.HasPermission(1, 100, "inventory:read")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(ok).To(gomega.BeTrue())
		})

		ginkgo.It("should deny a permission granted only in another library", func() {
			mockRepo.join(1, 100)
			mockRepo.join(1, 200)
			mockRepo.assign(1, 5, 100)
			mockRepo.assign(1, 6, 200)
			mockRepo.grant(5, updateLibrary)
			mockRepo.grant(6, readCatalog)

			granted, err := resolver.HasPermission(1, 100, "library:update")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(granted).To(gomega.BeTrue())

			_, err = resolver.HasPermission(1, 200, "library:update")
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
		})

		ginkgo.It("should deny when the user's roles carry no permissions at all", func() {
			mockRepo.join(1, 100)
			mockRepo.assign(1, 5, 100)

			_, err := resolver.HasPermission(1, 100, "inventory:read")

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
		})
	})
})
