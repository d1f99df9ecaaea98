package swagger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Swagger Suite")
}

var _ = Describe("Load", func() {
	It("accepts the shipped API document", func() {
		doc, err := Load(context.Background(), filepath.Join("..", "..", "..", "api", "openapi.yml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Paths.Find("/applications/{id}/status")).NotTo(BeNil())
		Expect(doc.Paths.Find("/mission-groups/map")).NotTo(BeNil())
	})

	It("rejects a document that does not validate", func() {
		path := filepath.Join(GinkgoT().TempDir(), "broken.yml")
		Expect(os.WriteFile(path, []byte("openapi: 3.0.3\ninfo:\n  version: 1.0.0\npaths: {}\n"), 0o644)).To(Succeed())
		_, err := Load(context.Background(), path)
		Expect(err).To(MatchError(ContainSubstring("validate openapi document")))
	})

	It("reports a missing file", func() {
		_, err := Load(context.Background(), "does-not-exist.yml")
		Expect(err).To(MatchError(ContainSubstring("load openapi document")))
	})
})
