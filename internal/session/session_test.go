package session_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worksync/worksync/internal/session"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Suite")
}

var _ = Describe("FileStore", func() {
	var (
		path  string
		store *session.FileStore
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "session.json")
		store = session.NewFileStore(path)
	})

	It("returns a zero credential when nothing is stored", func() {
		cred, err := store.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(cred.IsAuthenticated()).To(BeFalse())
		Expect(cred.APIKey).To(BeEmpty())
	})

	It("round-trips a credential", func() {
		in := session.Credential{APIKey: "k1", Token: "t1"}
		Expect(store.Set(in)).To(Succeed())

		out, err := store.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(in))
		Expect(out.IsAuthenticated()).To(BeTrue())
	})

	It("persists across store instances, like a page reload", func() {
		Expect(store.Set(session.Credential{APIKey: "k1", Token: "t1"})).To(Succeed())

		reopened := session.NewFileStore(path)
		cred, err := reopened.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(cred.Token).To(Equal("t1"))
	})

	It("writes the file with user-only permissions", func() {
		Expect(store.Set(session.Credential{APIKey: "k1", Token: "t1"})).To(Succeed())

		info, err := os.Stat(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))
	})

	It("clears the stored credential", func() {
		Expect(store.Set(session.Credential{APIKey: "k1", Token: "t1"})).To(Succeed())
		Expect(store.Clear()).To(Succeed())

		cred, err := store.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(cred.IsAuthenticated()).To(BeFalse())
	})

	It("is a no-op to clear twice", func() {
		Expect(store.Clear()).To(Succeed())
		Expect(store.Clear()).To(Succeed())
	})

	It("treats a corrupt session file as logged out", func() {
		Expect(os.WriteFile(path, []byte("{not json"), 0o600)).To(Succeed())

		cred, err := store.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(cred.IsAuthenticated()).To(BeFalse())
	})
})

var _ = Describe("MemoryStore", func() {
	It("behaves like the file store without touching disk", func() {
		store := session.NewMemoryStore()

		cred, err := store.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(cred.IsAuthenticated()).To(BeFalse())

		Expect(store.Set(session.Credential{APIKey: "k", Token: "t"})).To(Succeed())
		cred, err = store.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(cred.Token).To(Equal("t"))

		Expect(store.Clear()).To(Succeed())
		cred, err = store.Get()
		Expect(err).ToNot(HaveOccurred())
		Expect(cred.IsAuthenticated()).To(BeFalse())
	})
})
