package resume_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/attachment/attachmenttest"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/dbtest"
	resumeDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/resume"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/resume"
	resumePostgres "github.com/frahmantamala/hospital-careers/internal/resume/postgres"
	"github.com/frahmantamala/hospital-careers/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type part struct {
	field, name string
	content     []byte
}

func multipartBody(values map[string][]string, files []part) (*bytes.Buffer, string) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, vs := range values {
		for _, v := range vs {
			Expect(mw.WriteField(k, v)).To(Succeed())
		}
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(f.field, f.name)
		Expect(err).NotTo(HaveOccurred())
		_, err = fw.Write(f.content)
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(mw.Close()).To(Succeed())
	return &body, mw.FormDataContentType()
}

var _ = Describe("Resume Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = dbtest.Close(db) })

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := attachment.NewStore(internal.StorageConfig{PublicRoot: GinkgoT().TempDir(), URLPrefix: "/uploads"}, slogger)
		service := resume.NewService(resumePostgres.NewResumeRepository(db), store, &events.Recorder{}, slogger)
		handler := resume.NewHandler(&transport.BaseHandler{Logger: slogger}, service, store.MaxBytes())

		router = chi.NewRouter()
		router.Post("/resumes", handler.CreateResume)
	})

	payload := func() string {
		encoded, err := json.Marshal(resumeDTO(0))
		Expect(err).NotTo(HaveOccurred())
		return string(encoded)
	}

	It("accepts a deposit with its documents as one multipart request", func() {
		body, contentType := multipartBody(
			map[string][]string{"payload": {payload()}, "document_types": {"RESUME", "TRANSCRIPT"}},
			[]part{
				{"documents", "cv.pdf", attachmenttest.PDF(1024)},
				{"documents", "transcript.pdf", attachmenttest.PDF(2048)},
			})
		req := httptest.NewRequest(http.MethodPost, "/resumes", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var created resumeDatamodel.ResumeDeposit
		Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())
		Expect(created.Documents).To(HaveLen(2))
		Expect(created.Documents[1].DocumentType).To(Equal("TRANSCRIPT"))
	})

	It("refuses document types that do not pair with the files", func() {
		body, contentType := multipartBody(
			map[string][]string{"payload": {payload()}, "document_types": {"RESUME", "PHOTO"}},
			[]part{{"documents", "cv.pdf", attachmenttest.PDF(1024)}})
		req := httptest.NewRequest(http.MethodPost, "/resumes", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("document_types"))
	})

	It("still accepts a plain JSON deposit", func() {
		req := httptest.NewRequest(http.MethodPost, "/resumes", bytes.NewBufferString(payload()))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
	})
})
