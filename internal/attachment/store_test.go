package attachment_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAttachment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attachment Suite")
}

func fileHeader(field, name string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, name)
	Expect(err).NotTo(HaveOccurred())
	_, err = fw.Write(content)
	Expect(err).NotTo(HaveOccurred())
	Expect(mw.Close()).To(Succeed())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(64 << 20)
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(form.RemoveAll)
	return form.File[field][0]
}

func pdfBytes(size int) []byte {
	head := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	if size <= len(head) {
		return head
	}
	return append(head, bytes.Repeat([]byte("0"), size-len(head))...)
}

func pngBytes(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

func filesUnder(root string) []string {
	var out []string
	_ = filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			out = append(out, p)
		}
		return nil
	})
	return out
}

var _ = Describe("Store", func() {
	var (
		root  string
		store *attachment.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		ctx = context.Background()
		store = attachment.NewStore(internal.StorageConfig{
			PublicRoot:        root,
			URLPrefix:         "/uploads",
			MaxUploadBytes:    internal.DefaultMaxUploadBytes,
			MaxImageDimension: 64,
		}, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
	})

	Describe("Save", func() {
		It("stores an allowed PDF under the uploads directory", func() {
			fh := fileHeader("file", "id-card.pdf", pdfBytes(2048))

			stored, err := store.Save(ctx, attachment.DirDocuments, "idcard", fh, attachment.DocumentPolicy)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.MIME).To(Equal("application/pdf"))
			Expect(stored.OriginalName).To(Equal("id-card.pdf"))
			Expect(stored.Path).To(HavePrefix("/uploads/documents/"))
			Expect(stored.StoredName).To(MatchRegexp(`^\d+_idcard_[0-9a-f]{8}\.pdf$`))
			Expect(stored.Size).To(Equal(int64(2048)))

			Expect(filepath.Join(root, "uploads", "documents", stored.StoredName)).To(BeAnExistingFile())
		})

		It("rejects a 15MB PDF against the 10MB limit and writes nothing", func() {
			fh := fileHeader("file", "big.pdf", pdfBytes(15<<20))

			_, err := store.Save(ctx, attachment.DirDocuments, "big", fh, attachment.DocumentPolicy)
			Expect(errors.Is(err, internal.ErrFileTooLarge)).To(BeTrue())
			Expect(filesUnder(root)).To(BeEmpty())
		})

		It("honours a tighter per-policy limit", func() {
			policy := attachment.DocumentPolicy
			policy.MaxBytes = 1024
			fh := fileHeader("file", "small.pdf", pdfBytes(4096))

			_, err := store.Save(ctx, attachment.DirDocuments, "x", fh, policy)
			Expect(errors.Is(err, internal.ErrFileTooLarge)).To(BeTrue())
		})

		It("sniffs content instead of trusting the file name", func() {
			fh := fileHeader("file", "resume.pdf", []byte("MZ\x90\x00 definitely not a pdf"))

			_, err := store.Save(ctx, attachment.DirDocuments, "resume", fh, attachment.DocumentPolicy)
			Expect(errors.Is(err, internal.ErrUnsupportedFileType)).To(BeTrue())
			Expect(filesUnder(root)).To(BeEmpty())
		})

		It("refuses a PDF on an image-only endpoint", func() {
			fh := fileHeader("file", "photo.pdf", pdfBytes(128))

			_, err := store.Save(ctx, attachment.DirProfiles, "profile", fh, attachment.ImagePolicy)
			Expect(errors.Is(err, internal.ErrUnsupportedFileType)).To(BeTrue())
		})

		It("downscales oversized images on image endpoints", func() {
			fh := fileHeader("file", "me.png", pngBytes(200, 100))

			stored, err := store.Save(ctx, attachment.DirProfiles, "profile_7", fh, attachment.ImagePolicy)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.StoredName).To(HaveSuffix(".png"))

			f, err := os.Open(filepath.Join(root, "uploads", "profiles", stored.StoredName))
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()
			cfg, _, err := image.DecodeConfig(f)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Width).To(Equal(64))
			Expect(cfg.Height).To(Equal(32))
		})

		It("reports a missing file", func() {
			_, err := store.Save(ctx, attachment.DirDocuments, "x", nil, attachment.DocumentPolicy)
			Expect(errors.Is(err, internal.ErrFileMissing)).To(BeTrue())
		})
	})

	Describe("SaveWithRecord", func() {
		It("removes the written file when the insert fails", func() {
			fh := fileHeader("file", "contract.pdf", pdfBytes(512))

			_, err := store.SaveWithRecord(ctx, attachment.DirContracts, "contract", fh, attachment.DocumentPolicy,
				func(*attachment.StoredFile) error { return errors.New("insert failed") })
			Expect(err).To(MatchError("insert failed"))
			Expect(filesUnder(root)).To(BeEmpty())
		})

		It("never calls insert when validation fails", func() {
			called := false
			fh := fileHeader("file", "big.pdf", pdfBytes(11<<20))

			_, err := store.SaveWithRecord(ctx, attachment.DirContracts, "contract", fh, attachment.DocumentPolicy,
				func(*attachment.StoredFile) error { called = true; return nil })
			Expect(errors.Is(err, internal.ErrFileTooLarge)).To(BeTrue())
			Expect(called).To(BeFalse())
		})
	})

	Describe("Remove", func() {
		It("refuses paths outside the uploads prefix", func() {
			Expect(store.Remove("/etc/passwd")).To(HaveOccurred())
			Expect(store.Remove("/uploads/../../etc/passwd")).To(HaveOccurred())
		})

		It("ignores files that are already gone", func() {
			Expect(store.Remove("/uploads/documents/missing.pdf")).To(Succeed())
		})
	})

	Describe("Resolve", func() {
		var dir string

		BeforeEach(func() {
			dir = filepath.Join(root, "uploads", "profiles")
			Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "Profile_42.JPG"), []byte("x"), 0o644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "profile_temp_43.png"), []byte("x"), 0o644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(dir, "exact.png"), []byte("x"), 0o644)).To(Succeed())
		})

		It("serves exact names only by default", func() {
			p, err := store.Resolve(attachment.DirProfiles, "exact.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(filepath.Join(dir, "exact.png")))

			_, err = store.Resolve(attachment.DirProfiles, "profile_42.jpg")
			Expect(errors.Is(err, internal.ErrFileNotFound)).To(BeTrue())
		})

		It("does not escape the upload directory", func() {
			_, err := store.Resolve(attachment.DirProfiles, "../../../etc/passwd")
			Expect(errors.Is(err, internal.ErrFileNotFound)).To(BeTrue())
			_, err = store.Resolve("secrets", "exact.png")
			Expect(errors.Is(err, internal.ErrFileNotFound)).To(BeTrue())
		})

		Context("with legacy lookup enabled", func() {
			BeforeEach(func() {
				store = attachment.NewStore(internal.StorageConfig{
					PublicRoot:   root,
					URLPrefix:    "/uploads",
					LegacyLookup: true,
				}, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
			})

			It("matches case-insensitively", func() {
				p, err := store.Resolve(attachment.DirProfiles, "profile_42.jpg")
				Expect(err).NotTo(HaveOccurred())
				Expect(p).To(Equal(filepath.Join(dir, "Profile_42.JPG")))
			})

			It("falls back across image extensions", func() {
				p, err := store.Resolve(attachment.DirProfiles, "exact.jpeg")
				Expect(err).NotTo(HaveOccurred())
				Expect(strings.HasSuffix(p, "exact.png")).To(BeTrue())
			})

			It("finds profile_temp_ uploads", func() {
				p, err := store.Resolve(attachment.DirProfiles, "profile_43.jpg")
				Expect(err).NotTo(HaveOccurred())
				Expect(p).To(Equal(filepath.Join(dir, "profile_temp_43.png")))
			})
		})
	})
})
