package application_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/application"
	applicationPostgres "github.com/frahmantamala/hospital-careers/internal/application/postgres"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/attachment/attachmenttest"
	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/dbtest"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
	"github.com/frahmantamala/hospital-careers/internal/department"
	departmentPostgres "github.com/frahmantamala/hospital-careers/internal/department/postgres"
	"github.com/frahmantamala/hospital-careers/internal/pdfform"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func TestApplication(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Application Suite")
}

var fixedNow = time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *dates.Date {
	v := dates.New(y, m, d)
	return &v
}

func applicationDTO(departmentID int64, educations int) *application.ApplicationDTO {
	dto := &application.ApplicationDTO{
		DepartmentID: departmentID,
		Position:     "พยาบาลวิชาชีพ",
		Person: profileform.PersonDTO{
			Prefix:    "นางสาว",
			FirstName: "สุดา",
			LastName:  "ใจดี",
			Gender:    "FEMALE",
			BirthDate: date(1990, 5, 20),
			Email:     "Suda@Example.com",
			Phone:     "0812345678",
		},
		ExpectedSalary: "25000",
	}
	for i := 0; i < educations; i++ {
		dto.Educations = append(dto.Educations, profileform.EducationDTO{Level: "ปริญญาตรี", Institution: "มหาวิทยาลัยขอนแก่น"})
	}
	return dto
}

var _ = Describe("Service", func() {
	var (
		db       *gorm.DB
		service  *application.Service
		recorder *events.Recorder
		ctx      context.Context
		root     string
		openID   int64
		closedID int64
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = dbtest.Close(db) })

		root = GinkgoT().TempDir()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := attachment.NewStore(internal.StorageConfig{PublicRoot: root, URLPrefix: "/uploads"}, slogger)
		clock := func() time.Time { return fixedNow }

		departments := department.NewService(departmentPostgres.NewDepartmentRepository(db), store, slogger).WithClock(clock)
		renderer, err := pdfform.NewRenderer(internal.PDFConfig{})
		Expect(err).NotTo(HaveOccurred())
		recorder = &events.Recorder{}

		service = application.NewService(applicationPostgres.NewApplicationRepository(db), departments, store, recorder, renderer, slogger).
			WithClock(clock)
		ctx = context.Background()

		open, err := departments.Create(ctx, &department.DepartmentDTO{
			Name: "กลุ่มงานการพยาบาล", ApplicationStartDate: date(2025, 3, 1), ApplicationEndDate: date(2025, 3, 31),
		})
		Expect(err).NotTo(HaveOccurred())
		openID = open.ID

		closed, err := departments.Create(ctx, &department.DepartmentDTO{
			Name: "กลุ่มงานเภสัชกรรม", ApplicationStartDate: date(2025, 1, 1), ApplicationEndDate: date(2025, 1, 31),
		})
		Expect(err).NotTo(HaveOccurred())
		closedID = closed.ID
	})

	Describe("Create", func() {
		It("stores the form with its children and links the user by email", func() {
			lineID := "U1"
			u := &userDatamodel.User{LineID: &lineID, Role: "APPLICANT", Status: "ACTIVE"}
			u.FirstName = "สุดา"
			u.Email = "suda@example.com"
			Expect(db.Create(u).Error).To(Succeed())

			a, err := service.Create(ctx, nil, applicationDTO(openID, 2))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Status).To(Equal("PENDING"))
			Expect(a.UserID).NotTo(BeNil())
			Expect(*a.UserID).To(Equal(u.ID))
			Expect(a.Educations).To(HaveLen(2))
			Expect(a.Department.Name).To(Equal("กลุ่มงานการพยาบาล"))
			Expect(a.SubmittedAt).To(BeTemporally("==", fixedNow))
		})

		It("prefers the caller's user id over the email match", func() {
			lineID := "U3"
			caller := &userDatamodel.User{LineID: &lineID, Role: "APPLICANT", Status: "ACTIVE"}
			caller.FirstName = "สุดา"
			caller.Email = "someone.else@example.com"
			Expect(db.Create(caller).Error).To(Succeed())

			a, err := service.Create(ctx, &internal.Identity{UserID: caller.ID, Role: "APPLICANT"}, applicationDTO(openID, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(*a.UserID).To(Equal(caller.ID))
		})

		It("leaves the form unlinked when no user matches", func() {
			a, err := service.Create(ctx, nil, applicationDTO(openID, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(a.UserID).To(BeNil())
		})

		It("refuses a department outside its window", func() {
			_, err := service.Create(ctx, nil, applicationDTO(closedID, 0))
			Expect(errors.Is(err, internal.ErrApplicationClosed)).To(BeTrue())

			var count int64
			Expect(db.Model(&applicationDatamodel.ApplicationForm{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("reports a missing department", func() {
			_, err := service.Create(ctx, nil, applicationDTO(999, 0))
			Expect(errors.Is(err, internal.ErrDepartmentNotFound)).To(BeTrue())
		})

		It("rejects an unknown gender", func() {
			dto := applicationDTO(openID, 0)
			dto.Person.Gender = "X"
			_, err := service.Create(ctx, nil, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEnum))
		})
	})

	Describe("Update", func() {
		It("replaces children so exactly the submitted rows remain", func() {
			a, err := service.Create(ctx, nil, applicationDTO(openID, 2))
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.Update(ctx, a.ID, applicationDTO(openID, 1))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Educations).To(HaveLen(1))

			var count int64
			Expect(db.Model(&applicationDatamodel.Education{}).Where("application_id = ?", a.ID).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("allows moving the form to a closed department", func() {
			a, err := service.Create(ctx, nil, applicationDTO(openID, 0))
			Expect(err).NotTo(HaveOccurred())
			updated, err := service.Update(ctx, a.ID, applicationDTO(closedID, 0))
			Expect(err).NotTo(HaveOccurred())
			Expect(*updated.DepartmentID).To(Equal(closedID))
			Expect(updated.Status).To(Equal("PENDING"))
		})
	})

	Describe("UpdateStatus", func() {
		var a *applicationDatamodel.ApplicationForm

		BeforeEach(func() {
			var err error
			a, err = service.Create(ctx, nil, applicationDTO(openID, 1))
			Expect(err).NotTo(HaveOccurred())
		})

		It("approves, records notes and publishes one event", func() {
			time.Sleep(10 * time.Millisecond)
			updated, err := service.UpdateStatus(ctx, a.ID, 7, &application.UpdateStatusDTO{Status: "approved", ReviewNotes: "ผ่านการสัมภาษณ์"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal("APPROVED"))
			Expect(updated.ReviewNotes).To(Equal("ผ่านการสัมภาษณ์"))
			Expect(updated.UpdatedAt).To(BeTemporally(">", a.UpdatedAt))
			Expect(updated.Educations).To(HaveLen(1))

			Expect(recorder.Events).To(HaveLen(1))
			ev := recorder.Events[0].(*events.StatusChangedEvent)
			Expect(ev.EntityType).To(Equal(events.EntityApplication))
			Expect(ev.From).To(Equal("PENDING"))
			Expect(ev.To).To(Equal("APPROVED"))
			Expect(ev.ActorID).To(Equal(int64(7)))
		})

		It("treats the current status as a no-op", func() {
			_, err := service.UpdateStatus(ctx, a.ID, 7, &application.UpdateStatusDTO{Status: "PENDING"})
			Expect(err).NotTo(HaveOccurred())
			Expect(recorder.Events).To(BeEmpty())
		})

		It("refuses to return a decision to PENDING", func() {
			_, err := service.UpdateStatus(ctx, a.ID, 7, &application.UpdateStatusDTO{Status: "REJECTED"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateStatus(ctx, a.ID, 7, &application.UpdateStatusDTO{Status: "PENDING"})
			Expect(errors.Is(err, internal.ErrInvalidStatusTransition)).To(BeTrue())

			stored, err := service.Get(ctx, a.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal("REJECTED"))
		})

		It("rejects an unknown status without touching the row", func() {
			_, err := service.UpdateStatus(ctx, a.ID, 7, &application.UpdateStatusDTO{Status: "DONE"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEnum))
			Expect(recorder.Events).To(BeEmpty())
		})
	})

	Describe("access", func() {
		It("lets applicants read only their own forms", func() {
			lineID := "U2"
			u := &userDatamodel.User{LineID: &lineID, Role: "APPLICANT", Status: "ACTIVE"}
			u.FirstName = "สุดา"
			Expect(db.Create(u).Error).To(Succeed())

			a, err := service.Create(ctx, &internal.Identity{UserID: u.ID, Role: "APPLICANT"}, applicationDTO(openID, 0))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetFor(ctx, &internal.Identity{UserID: u.ID, Role: "APPLICANT"}, a.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.GetFor(ctx, &internal.Identity{UserID: u.ID + 1, Role: "APPLICANT"}, a.ID)
			Expect(errors.Is(err, internal.ErrForbidden)).To(BeTrue())
			_, err = service.GetFor(ctx, &internal.Identity{Role: "HOSPITAL_STAFF"}, a.ID)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("List", func() {
		It("filters by status and department and searches applicant fields", func() {
			for i := 0; i < 3; i++ {
				_, err := service.Create(ctx, nil, applicationDTO(openID, 0))
				Expect(err).NotTo(HaveOccurred())
			}
			other := applicationDTO(openID, 0)
			other.Person.FirstName = "มานี"
			other.Person.Email = "manee@example.com"
			_, err := service.Create(ctx, nil, other)
			Expect(err).NotTo(HaveOccurred())

			filter, err := application.ParseListFilter("pending", "มานี", &openID, pagination.New(1, 10))
			Expect(err).NotTo(HaveOccurred())
			page, err := service.List(ctx, filter)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].FirstName).To(Equal("มานี"))

			page, err = service.List(ctx, application.ListFilter{DepartmentID: &openID, Page: pagination.New(2, 3)})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Pagination.Total).To(Equal(int64(4)))
		})
	})

	Describe("documents", func() {
		var a *applicationDatamodel.ApplicationForm
		staff := &internal.Identity{Role: "HOSPITAL_STAFF"}

		BeforeEach(func() {
			var err error
			a, err = service.Create(ctx, nil, applicationDTO(openID, 0))
			Expect(err).NotTo(HaveOccurred())
		})

		upload := func(content []byte, docType string) (*applicationDatamodel.Document, error) {
			fh, form, err := attachmenttest.FileHeader("file", "transcript.pdf", content)
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(form.RemoveAll)
			return service.UploadDocument(ctx, staff, a.ID, docType, fh)
		}

		It("stores a typed document", func() {
			d, err := upload(attachmenttest.PDF(2048), "transcript")
			Expect(err).NotTo(HaveOccurred())
			Expect(d.DocumentType).To(Equal("TRANSCRIPT"))
			Expect(d.FilePath).To(HavePrefix("/uploads/documents/"))
			Expect(filepath.Join(root, filepath.FromSlash(d.FilePath))).To(BeAnExistingFile())
		})

		It("rejects a 15MB PDF and creates no row", func() {
			_, err := upload(attachmenttest.PDF(15<<20), "")
			Expect(errors.Is(err, internal.ErrFileTooLarge)).To(BeTrue())

			var count int64
			Expect(db.Model(&applicationDatamodel.Document{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
		})

		It("removes documents and their files with the form", func() {
			d, err := upload(attachmenttest.PDF(512), "ID_CARD")
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, a.ID)).To(Succeed())
			Expect(filepath.Join(root, filepath.FromSlash(d.FilePath))).NotTo(BeAnExistingFile())

			var count int64
			Expect(db.Model(&applicationDatamodel.Document{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
			_, err = service.Get(ctx, a.ID)
			Expect(errors.Is(err, internal.ErrApplicationNotFound)).To(BeTrue())
		})

		It("keeps other applicants out", func() {
			fh, form, err := attachmenttest.FileHeader("file", "x.pdf", attachmenttest.PDF(256))
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(form.RemoveAll)
			_, err = service.UploadDocument(ctx, &internal.Identity{UserID: 5, Role: "APPLICANT"}, a.ID, "", fh)
			Expect(errors.Is(err, internal.ErrForbidden)).To(BeTrue())
		})
	})

	Describe("RenderPDF and Export", func() {
		It("renders the form", func() {
			a, err := service.Create(ctx, nil, applicationDTO(openID, 1))
			Expect(err).NotTo(HaveOccurred())

			var buf bytes.Buffer
			Expect(service.RenderPDF(ctx, a.ID, &buf)).To(Succeed())
			Expect(buf.String()).To(HavePrefix("%PDF-"))
		})

		It("exports matching forms as a workbook", func() {
			for i := 0; i < 2; i++ {
				_, err := service.Create(ctx, nil, applicationDTO(openID, 1))
				Expect(err).NotTo(HaveOccurred())
			}

			var buf bytes.Buffer
			n, err := service.Export(ctx, application.ListFilter{}, &buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))

			wb, err := excelize.OpenReader(&buf)
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(wb.Close)
			rows, err := wb.GetRows("ใบสมัคร")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[1][2]).To(Equal("นางสาวสุดา ใจดี"))
			Expect(rows[1][6]).To(Equal("34"))
		})
	})
})
