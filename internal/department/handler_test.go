package department_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/attachment/attachmenttest"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/dbtest"
	"github.com/frahmantamala/hospital-careers/internal/department"
	departmentPostgres "github.com/frahmantamala/hospital-careers/internal/department/postgres"
	"github.com/frahmantamala/hospital-careers/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Department Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = dbtest.Close(db) })

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := attachment.NewStore(internal.StorageConfig{PublicRoot: GinkgoT().TempDir(), URLPrefix: "/uploads"}, slogger)
		service := department.NewService(departmentPostgres.NewDepartmentRepository(db), store, slogger).
			WithClock(func() time.Time { return fixedNow })
		handler := department.NewHandler(&transport.BaseHandler{Logger: slogger}, service, store.MaxBytes())

		router = chi.NewRouter()
		router.Get("/openings", handler.ListOpenings)
		router.Get("/departments", handler.ListDepartments)
		router.Post("/departments", handler.CreateDepartment)
		router.Get("/departments/{id}", handler.GetDepartment)
		router.Post("/departments/{id}/attachments", handler.UploadAttachment)
	})

	do := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	create := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/departments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		return do(req)
	}

	It("creates a department and shows it on the job board", func() {
		w := create(`{"name":"กลุ่มงานอายุรกรรม","application_start_date":"01/03/2568","application_end_date":"2025-03-31"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = do(httptest.NewRequest(http.MethodGet, "/openings", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp department.OpeningsResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Openings).To(HaveLen(1))
		Expect(resp.Openings[0].Name).To(Equal("กลุ่มงานอายุรกรรม"))
		Expect(resp.Openings[0].ApplicationStartDate.Format("2006-01-02")).To(Equal("2025-03-01"))
	})

	It("returns the error envelope for invalid enums", func() {
		w := create(`{"name":"X","gender_preference":"BOTH"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var resp struct {
			Error struct {
				Code    string `json:"code"`
				Details struct {
					Errors []struct {
						Field string `json:"field"`
					} `json:"errors"`
				} `json:"details"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Error.Code).To(Equal(string(internal.ErrCodeInvalidEnum)))
		Expect(resp.Error.Details.Errors[0].Field).To(Equal("gender_preference"))
	})

	It("rejects unknown JSON fields", func() {
		w := create(`{"name":"X","colour":"blue"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for a missing department and 400 for a bad id", func() {
		Expect(do(httptest.NewRequest(http.MethodGet, "/departments/99", nil)).Code).To(Equal(http.StatusNotFound))
		Expect(do(httptest.NewRequest(http.MethodGet, "/departments/abc", nil)).Code).To(Equal(http.StatusBadRequest))
	})

	It("paginates the admin list", func() {
		for _, n := range []string{"A", "B", "C"} {
			Expect(create(`{"name":"` + n + `"}`).Code).To(Equal(http.StatusCreated))
		}
		w := do(httptest.NewRequest(http.MethodGet, "/departments?per_page=2&page=2", nil))
		Expect(w.Code).To(Equal(http.StatusOK))

		var page pagination.Page[department.DepartmentResponse]
		Expect(json.NewDecoder(w.Body).Decode(&page)).To(Succeed())
		Expect(page.Items).To(HaveLen(1))
		Expect(page.Items[0].Name).To(Equal("C"))
		Expect(page.Pagination.TotalPages).To(Equal(2))
	})

	It("refuses a non-document upload", func() {
		Expect(create(`{"name":"A"}`).Code).To(Equal(http.StatusCreated))

		body, contentType, err := attachmenttest.Body("file", "notes.txt", []byte("plain text notes"))
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, "/departments/1/attachments", body)
		req.Header.Set("Content-Type", contentType)

		w := do(req)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeUnsupportedFileType)))
	})
})
