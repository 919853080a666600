package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/avelasqz/library-management/internal"
)

var _ = ginkgo.Describe("Gate", func() {
	var (
		gate     *Gate
		mockRepo *mockRepository
	)

	createInventory := Permission{ID: 20, Name: "Create inventory", Code: "inventory:create"}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		gate = NewGate(NewResolver(mockRepo), mockRepo, nil)
	})

	ginkgo.It("should deny when no user is attached to the request", func() {
		err := gate.Require(nil, nil, "inventory:create")

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
	})

	ginkgo.It("should deny a caller who belongs to no library", func() {
		err := gate.Require(&User{ID: 1}, nil, "inventory:create")

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
	})

	ginkgo.It("should infer the caller's first library when none is supplied", func() {
		mockRepo.join(1, 100)
		mockRepo.assign(1, 5, 100)
		mockRepo.grant(5, createInventory)

		err := gate.Require(&User{ID: 1}, nil, "inventory:create")

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	ginkgo.It("should check the named library, not the first one", func() {
		mockRepo.join(1, 100)
		mockRepo.join(1, 200)
		mockRepo.assign(1, 5, 100)
		mockRepo.grant(5, createInventory)

		library := int64(200)
		err := gate.Require(&User{ID: 1}, &library, "inventory:create")

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(403))
	})

	ginkgo.It("should propagate a resolver denial unchanged", func() {
		mockRepo.join(1, 100)

		library := int64(100)
		err := gate.Require(&User{ID: 1}, &library, "inventory:create")

		gomega.Expect(err).To(gomega.HaveOccurred())
	})
})
