package application_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/application"
	applicationPostgres "github.com/frahmantamala/hospital-careers/internal/application/postgres"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/dbtest"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/department"
	departmentPostgres "github.com/frahmantamala/hospital-careers/internal/department/postgres"
	"github.com/frahmantamala/hospital-careers/internal/pdfform"
	"github.com/frahmantamala/hospital-careers/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Application Handler Integration", func() {
	var (
		router *chi.Mux
		deptID int64
	)

	staff := &internal.Identity{UserID: 1, Role: "HOSPITAL_STAFF"}

	BeforeEach(func() {
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = dbtest.Close(db) })

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := attachment.NewStore(internal.StorageConfig{PublicRoot: GinkgoT().TempDir(), URLPrefix: "/uploads"}, slogger)
		clock := func() time.Time { return fixedNow }
		departments := department.NewService(departmentPostgres.NewDepartmentRepository(db), store, slogger).WithClock(clock)
		renderer, err := pdfform.NewRenderer(internal.PDFConfig{})
		Expect(err).NotTo(HaveOccurred())
		service := application.NewService(applicationPostgres.NewApplicationRepository(db), departments, store, &events.Recorder{}, renderer, slogger).
			WithClock(clock)
		handler := application.NewHandler(&transport.BaseHandler{Logger: slogger}, service, store.MaxBytes())

		d, err := departments.Create(context.Background(), &department.DepartmentDTO{Name: "กลุ่มงานการพยาบาล"})
		Expect(err).NotTo(HaveOccurred())
		deptID = d.ID

		router = chi.NewRouter()
		router.Post("/applications", handler.CreateApplication)
		router.Get("/applications/export", handler.ExportApplications)
		router.Get("/applications/{id}", handler.GetApplication)
		router.Get("/applications/{id}/pdf", handler.DownloadPDF)
		router.Patch("/applications/{id}/status", handler.UpdateApplicationStatus)
	})

	do := func(req *http.Request, identity *internal.Identity) *httptest.ResponseRecorder {
		if identity != nil {
			req = req.WithContext(internal.ContextWithIdentity(req.Context(), identity))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	submit := func() {
		body := `{"department_id":` + strconv.FormatInt(deptID, 10) + `,"position":"พยาบาล","person":{"first_name":"สุดา","gender":"female","birth_date":"20/05/2533"}}`
		req := httptest.NewRequest(http.MethodPost, "/applications", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		Expect(do(req, nil).Code).To(Equal(http.StatusCreated))
	}

	It("requires an identity to read a form", func() {
		submit()
		Expect(do(httptest.NewRequest(http.MethodGet, "/applications/1", nil), nil).Code).To(Equal(http.StatusUnauthorized))
		Expect(do(httptest.NewRequest(http.MethodGet, "/applications/1", nil), staff).Code).To(Equal(http.StatusOK))
	})

	It("serves the PDF and the export with download headers", func() {
		submit()

		w := do(httptest.NewRequest(http.MethodGet, "/applications/1/pdf", nil), staff)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(Equal("application/pdf"))
		Expect(w.Body.String()).To(HavePrefix("%PDF-"))

		w = do(httptest.NewRequest(http.MethodGet, "/applications/export?status=PENDING", nil), staff)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring(".xlsx"))
	})

	It("returns 400 with the transition code for a forbidden move", func() {
		submit()
		patch := func(status string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPatch, "/applications/1/status", bytes.NewBufferString(`{"status":"`+status+`"}`))
			req.Header.Set("Content-Type", "application/json")
			return do(req, staff)
		}
		Expect(patch("APPROVED").Code).To(Equal(http.StatusOK))
		w := patch("PENDING")
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeInvalidStatusTransition)))
	})
})
