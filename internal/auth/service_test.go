package auth

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/avelasqz/library-management/internal"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// mockRepository backs the auth service, resolver and gate tests.
type mockRepository struct {
	creds       map[string]*Credentials
	users       map[string]*User
	usersByID   map[int64]*User
	memberships map[int64][]int64
	assignments map[int64]map[int64][]RoleAssignment
	permissions map[int64][]Permission
	err         error
}

func newMockRepository() *mockRepository {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	alice := &User{ID: 1, Username: "alice", Email: "alice@mail.com"}
	bob := &User{ID: 2, Username: "bob", Email: "bob@mail.com"}

	return &mockRepository{
		creds: map[string]*Credentials{
			"alice":          {UserID: 1, Username: "alice", PasswordHash: string(hash)},
			"alice@mail.com": {UserID: 1, Username: "alice", PasswordHash: string(hash)},
			"bob":            {UserID: 2, Username: "bob", PasswordHash: string(hash)},
		},
		users:       map[string]*User{"alice": alice, "bob": bob},
		usersByID:   map[int64]*User{1: alice, 2: bob},
		memberships: map[int64][]int64{},
		assignments: map[int64]map[int64][]RoleAssignment{},
		permissions: map[int64][]Permission{},
	}
}

func (m *mockRepository) GetCredentials(usernameOrEmail string) (*Credentials, error) {
	if m.err != nil {
		return nil, m.err
	}
	if c, ok := m.creds[usernameOrEmail]; ok {
		return c, nil
	}
	return nil, internal.NewNotFoundError("User", "username", usernameOrEmail)
}

func (m *mockRepository) GetUserByUsername(username string) (*User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, internal.NewNotFoundError("User", "username", username)
}

func (m *mockRepository) GetUserByID(userID int64) (*User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.usersByID[userID]; ok {
		return u, nil
	}
	return nil, internal.NewNotFoundError("User", "id", userID)
}

func (m *mockRepository) LibraryIDsForUser(userID int64) ([]int64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.memberships[userID], nil
}

func (m *mockRepository) UserKnowsLibrary(userID, libraryID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, id := range m.memberships[userID] {
		if id == libraryID {
			return true, nil
		}
	}
	if len(m.assignments[userID][libraryID]) > 0 {
		return true, nil
	}
	return false, nil
}

func (m *mockRepository) RoleAssignments(userID, libraryID int64) ([]RoleAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assignments[userID][libraryID], nil
}

func (m *mockRepository) PermissionsForRoles(roleIDs []int64) ([]Permission, error) {
	if m.err != nil {
		return nil, m.err
	}
	seen := map[int64]struct{}{}
	var out []Permission
	for _, roleID := range roleIDs {
		for _, p := range m.permissions[roleID] {
			if _, ok := seen[p.ID]; ok {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepository) assign(userID, roleID, libraryID int64) {
	if m.assignments[userID] == nil {
		m.assignments[userID] = map[int64][]RoleAssignment{}
	}
	m.assignments[userID][libraryID] = append(m.assignments[userID][libraryID],
		RoleAssignment{UserID: userID, RoleID: roleID, LibraryID: libraryID})
}

func (m *mockRepository) join(userID, libraryID int64) {
	m.memberships[userID] = append(m.memberships[userID], libraryID)
}

func (m *mockRepository) grant(roleID int64, p Permission) {
	m.permissions[roleID] = append(m.permissions[roleID], p)
}

func testSecurityConfig() internal.SecurityConfig {
	return internal.SecurityConfig{
		JWTSecret:      "test-secret-at-least-32-bytes-long!!",
		AccessTokenTTL: 15 * time.Minute,
		BCryptCost:     bcrypt.MinCost,
	}
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockRepository
		issuer   *TokenIssuer
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockRepository()
		issuer = NewTokenIssuer(testSecurityConfig())
		service = NewService(mockRepo, issuer, bcrypt.MinCost)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return the user and an access token", func() {
				user, tokens, err := service.Authenticate(LoginDTO{
					Username: "alice",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(user.Username).To(gomega.Equal("alice"))
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
			})

			ginkgo.It("should accept the email in place of the username", func() {
				user, _, err := service.Authenticate(LoginDTO{
					Username: "alice@mail.com",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(user.ID).To(gomega.Equal(int64(1)))
			})

			ginkgo.It("should issue a token that resolves back to the user", func() {
				_, tokens, err := service.Authenticate(LoginDTO{
					Username: "alice",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				user, err := service.CurrentUser(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(user.Username).To(gomega.Equal("alice"))
			})
		})

		ginkgo.Context("when authentication fails", func() {
			ginkgo.It("should reject a wrong password with invalid credentials", func() {
				_, _, err := service.Authenticate(LoginDTO{
					Username: "alice",
					Password: "wrong_password",
				})

				gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject an unknown user with the same error as a wrong password", func() {
				_, _, unknownErr := service.Authenticate(LoginDTO{
					Username: "nobody",
					Password: "correct_password",
				})
				_, _, wrongErr := service.Authenticate(LoginDTO{
					Username: "alice",
					Password: "wrong_password",
				})

				gomega.Expect(unknownErr).To(gomega.MatchError(internal.ErrInvalidCredentials))
				gomega.Expect(wrongErr).To(gomega.MatchError(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject a corrupt stored hash as invalid credentials", func() {
				mockRepo.creds["alice"].PasswordHash = "not-a-bcrypt-hash"

				_, _, err := service.Authenticate(LoginDTO{
					Username: "alice",
					Password: "correct_password",
				})

				gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject empty credentials as a validation error", func() {
				_, _, err := service.Authenticate(LoginDTO{})

				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
			})
		})
	})

	ginkgo.Describe("CurrentUser", func() {
		ginkgo.It("should reject an expired token as invalid token", func() {
			token, err := issuer.IssueToken("alice", nil, -time.Second)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CurrentUser(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("should reject a token signed with another secret", func() {
			other := NewTokenIssuer(internal.SecurityConfig{
				JWTSecret:      "another-secret-that-is-long-enough!!",
				AccessTokenTTL: time.Minute,
			})
			token, err := other.IssueToken("alice", nil, time.Minute)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CurrentUser(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("should report a valid token for a deleted user as not found", func() {
			token, err := issuer.IssueToken("ghost", nil, time.Minute)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.CurrentUser(token)
			gomega.Expect(internal.IsNotFound(err)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("VerifyPassword", func() {
		ginkgo.It("should verify a correct password against its hash", func() {
			hash, err := service.HashPassword("secret123")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(VerifyPassword("secret123", hash)).To(gomega.BeTrue())
		})

		ginkgo.It("should report false for a malformed hash instead of failing", func() {
			gomega.Expect(VerifyPassword("secret123", "garbage")).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("TokenIssuer", func() {
		ginkgo.It("should round-trip subject and scopes through a signed token", func() {
			token, err := issuer.IssueToken("alice", []string{"read", "write"}, 0)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := issuer.ParseToken(token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Subject).To(gomega.Equal("alice"))
			gomega.Expect(claims.Scopes).To(gomega.Equal([]string{"read", "write"}))
			gomega.Expect(claims.ExpiresAt.Time).To(gomega.BeTemporally(">", time.Now()))
		})

		ginkgo.It("should reject a token whose subject is empty", func() {
			token, err := issuer.IssueToken("", nil, time.Minute)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = issuer.ParseToken(token)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
		})
	})
})
