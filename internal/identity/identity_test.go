package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worksync/worksync/internal/identity"
)

func TestIdentity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Identity Suite")
}

// signToken builds a real token; the signing secret is irrelevant because
// the resolver never verifies.
func signToken(claims identity.Claims) string {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   "42",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte("test-secret"))
	Expect(err).ToNot(HaveOccurred())
	return token
}

var _ = Describe("IsAdmin", func() {
	Context("with tokens that claim an administrator", func() {
		It("returns true for role=admin", func() {
			token := signToken(identity.Claims{Role: "admin"})
			Expect(identity.IsAdmin(token)).To(BeTrue())
		})

		It("returns true for isAdmin=true even without a role", func() {
			token := signToken(identity.Claims{IsAdmin: true})
			Expect(identity.IsAdmin(token)).To(BeTrue())
		})
	})

	Context("with tokens that do not claim an administrator", func() {
		It("returns false for role=user", func() {
			token := signToken(identity.Claims{Role: "user", Email: "alice@example.com"})
			Expect(identity.IsAdmin(token)).To(BeFalse())
		})

		It("returns false when the payload has no role claims at all", func() {
			token := signToken(identity.Claims{Email: "alice@example.com"})
			Expect(identity.IsAdmin(token)).To(BeFalse())
		})
	})

	Context("with broken input", func() {
		It("fails closed on an empty token", func() {
			Expect(identity.IsAdmin("")).To(BeFalse())
		})

		It("fails closed when the token is not three segments", func() {
			Expect(identity.IsAdmin("just-two.segments")).To(BeFalse())
		})

		It("fails closed when the payload segment is not base64", func() {
			Expect(identity.IsAdmin("aaaa.!!!!.bbbb")).To(BeFalse())
		})

		It("fails closed when the payload is base64 but not JSON", func() {
			// "bm90IGpzb24" is base64url for "not json"
			Expect(identity.IsAdmin("aaaa.bm90IGpzb24.bbbb")).To(BeFalse())
		})
	})
})

var _ = Describe("Decode", func() {
	It("exposes the payload fields without verifying the signature", func() {
		token := signToken(identity.Claims{Role: "admin", Email: "boss@example.com", FullName: "The Boss"})
		// Corrupt the signature segment; decode must still work.
		claims, err := identity.Decode(token[:len(token)-2] + "xx")
		Expect(err).ToNot(HaveOccurred())
		Expect(claims.Role).To(Equal("admin"))
		Expect(claims.Email).To(Equal("boss@example.com"))
		Expect(claims.FullName).To(Equal("The Boss"))
	})

	It("returns an error for malformed tokens", func() {
		_, err := identity.Decode("nonsense")
		Expect(err).To(HaveOccurred())
	})
})
