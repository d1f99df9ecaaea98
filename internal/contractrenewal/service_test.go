package contractrenewal_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/attachment/attachmenttest"
	"github.com/frahmantamala/hospital-careers/internal/contractrenewal"
	renewalPostgres "github.com/frahmantamala/hospital-careers/internal/contractrenewal/postgres"
	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	renewalDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/contractrenewal"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/dbtest"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestContractRenewal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Contract Renewal Suite")
}

var reviewTime = time.Date(2025, 9, 30, 2, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *dates.Date {
	v := dates.New(y, m, d)
	return &v
}

func renewalDTO() *contractrenewal.RenewalDTO {
	return &contractrenewal.RenewalDTO{
		Prefix:               "นาง",
		FirstName:            "มาลี",
		LastName:             "ศรีสุข",
		Department:           "กลุ่มงานการพยาบาล",
		Position:             "พยาบาลวิชาชีพ",
		Email:                "Malee@Example.com",
		CurrentContractStart: date(2024, 10, 1),
		CurrentContractEnd:   date(2025, 9, 30),
		NewContractStart:     date(2025, 10, 1),
		NewContractEnd:       date(2026, 9, 30),
	}
}

var _ = Describe("EmployeeName", func() {
	It("joins the prefix onto the first name", func() {
		Expect(contractrenewal.EmployeeName("นาง", "มาลี", "ศรีสุข")).To(Equal("นางมาลี ศรีสุข"))
		Expect(contractrenewal.EmployeeName("", "มาลี", "")).To(Equal("มาลี"))
	})
})

var _ = Describe("Service", func() {
	var (
		db       *gorm.DB
		service  *contractrenewal.Service
		recorder *events.Recorder
		ctx      context.Context
		root     string
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = dbtest.Close(db) })

		root = GinkgoT().TempDir()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := attachment.NewStore(internal.StorageConfig{PublicRoot: root, URLPrefix: "/uploads"}, slogger)
		recorder = &events.Recorder{}
		service = contractrenewal.NewService(renewalPostgres.NewContractRenewalRepository(db), store, recorder, slogger).
			WithClock(func() time.Time { return reviewTime })
		ctx = context.Background()
	})

	upload := func(id int64) *renewalDatamodel.Attachment {
		fh, form, err := attachmenttest.FileHeader("file", "contract.pdf", attachmenttest.PDF(1024))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(form.RemoveAll)
		a, err := service.UploadAttachment(ctx, id, fh)
		Expect(err).NotTo(HaveOccurred())
		return a
	}

	Describe("Create", func() {
		It("derives the employee name and generates an employee id", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Status).To(Equal("PENDING"))
			Expect(c.EmployeeName).To(Equal("นางมาลี ศรีสุข"))
			Expect(c.EmployeeID).To(MatchRegexp(`^EMP-[0-9A-F]{8}$`))
			Expect(c.Email).To(Equal("malee@example.com"))
		})

		It("keeps a supplied employee id", func() {
			dto := renewalDTO()
			dto.EmployeeID = "n-1024"
			c, err := service.Create(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.EmployeeID).To(Equal("N-1024"))
		})

		It("rejects a new contract that ends before it starts", func() {
			dto := renewalDTO()
			dto.NewContractEnd = date(2025, 1, 1)
			_, err := service.Create(ctx, dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})
	})

	Describe("Update", func() {
		It("rebuilds the name and keeps the generated id", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())

			dto := renewalDTO()
			dto.LastName = "ใจงาม"
			updated, err := service.Update(ctx, c.ID, dto)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.EmployeeName).To(Equal("นางมาลี ใจงาม"))
			Expect(updated.EmployeeID).To(Equal(c.EmployeeID))
		})
	})

	Describe("UpdateStatus", func() {
		It("approves without touching attachments", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			a := upload(c.ID)

			time.Sleep(10 * time.Millisecond)
			approved, err := service.UpdateStatus(ctx, c.ID, 4, &contractrenewal.UpdateStatusDTO{Status: "APPROVED"})
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal("APPROVED"))
			Expect(approved.UpdatedAt).To(BeTemporally(">", c.UpdatedAt))
			Expect(*approved.ReviewedBy).To(Equal(int64(4)))
			Expect(*approved.ReviewedAt).To(BeTemporally("==", reviewTime))

			Expect(approved.Attachments).To(HaveLen(1))
			Expect(approved.Attachments[0].ID).To(Equal(a.ID))
			Expect(approved.Attachments[0].FilePath).To(Equal(a.FilePath))

			Expect(recorder.Events).To(HaveLen(1))
			Expect(recorder.Events[0].(*events.StatusChangedEvent).EntityType).To(Equal(events.EntityContractRenewal))
		})

		It("does not reopen or flip a decision", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateStatus(ctx, c.ID, 4, &contractrenewal.UpdateStatusDTO{Status: "REJECTED"})
			Expect(err).NotTo(HaveOccurred())

			for _, s := range []string{"PENDING", "APPROVED"} {
				_, err = service.UpdateStatus(ctx, c.ID, 4, &contractrenewal.UpdateStatusDTO{Status: s})
				Expect(errors.Is(err, internal.ErrInvalidStatusTransition)).To(BeTrue())
			}
		})

		It("rejects an unknown status", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateStatus(ctx, c.ID, 4, &contractrenewal.UpdateStatusDTO{Status: "CANCELLED"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEnum))
		})
	})

	Describe("attachments", func() {
		It("deletes attachments and their files with the renewal", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			a := upload(c.ID)
			onDisk := filepath.Join(root, filepath.FromSlash(a.FilePath))
			Expect(a.FilePath).To(HavePrefix("/uploads/contracts/"))
			Expect(onDisk).To(BeAnExistingFile())

			Expect(service.Delete(ctx, c.ID)).To(Succeed())
			Expect(onDisk).NotTo(BeAnExistingFile())

			var count int64
			Expect(db.Model(&renewalDatamodel.Attachment{}).Count(&count).Error).To(Succeed())
			Expect(count).To(BeZero())
			_, err = service.Get(ctx, c.ID)
			Expect(errors.Is(err, internal.ErrContractRenewalNotFound)).To(BeTrue())
		})

		It("refuses a text file", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			fh, form, err := attachmenttest.FileHeader("file", "notes.txt", []byte("plain text body"))
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(form.RemoveAll)
			_, err = service.UploadAttachment(ctx, c.ID, fh)
			Expect(errors.Is(err, internal.ErrUnsupportedFileType)).To(BeTrue())
		})

		It("deletes one attachment and reports a missing one", func() {
			c, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			a := upload(c.ID)
			Expect(service.DeleteAttachment(ctx, c.ID, a.ID)).To(Succeed())
			Expect(errors.Is(service.DeleteAttachment(ctx, c.ID, a.ID), internal.ErrAttachmentNotFound)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("filters by status and department", func() {
			first, err := service.Create(ctx, renewalDTO())
			Expect(err).NotTo(HaveOccurred())
			other := renewalDTO()
			other.Department = "กลุ่มงานเภสัชกรรม"
			_, err = service.Create(ctx, other)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.UpdateStatus(ctx, first.ID, 1, &contractrenewal.UpdateStatusDTO{Status: "APPROVED"})
			Expect(err).NotTo(HaveOccurred())

			filter, err := contractrenewal.ParseListFilter("approved", "", "", pagination.New(1, 10))
			Expect(err).NotTo(HaveOccurred())
			page, err := service.List(ctx, filter)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].ID).To(Equal(first.ID))

			filter, err = contractrenewal.ParseListFilter("", "กลุ่มงานเภสัชกรรม", "", pagination.New(1, 10))
			Expect(err).NotTo(HaveOccurred())
			page, err = service.List(ctx, filter)
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Pagination.Total).To(Equal(int64(1)))
		})
	})
})
