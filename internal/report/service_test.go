package report_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	renewalDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/contractrenewal"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/dbtest"
	departmentDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	missiongroupDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/missiongroup"
	resumeDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/resume"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/report"
	reportPostgres "github.com/frahmantamala/hospital-careers/internal/report/postgres"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

var _ = Describe("Dashboard", func() {
	var (
		db      *gorm.DB
		service *report.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = dbtest.Close(db) })

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = report.NewService(reportPostgres.NewReportRepository(sqlx.NewDb(sqlDB, "sqlite3")), slogger)
		ctx = context.Background()
	})

	It("zero-fills every status on an empty database", func() {
		d, err := service.Dashboard(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Applications.Total).To(BeZero())
		Expect(d.Applications.ByStatus).To(HaveLen(3))
		Expect(d.Resumes.ByStatus).To(HaveKeyWithValue("ARCHIVED", int64(0)))
		Expect(d.UsersByRole).To(HaveKeyWithValue("ADMIN", int64(0)))
		Expect(d.MissionGroups).To(BeEmpty())
	})

	It("counts rows per status, role and mission group", func() {
		clinical := &missiongroupDatamodel.MissionGroup{Name: "กลุ่มภารกิจด้านบริการทุติยภูมิและตติยภูมิ", Code: "SECONDARY", DisplayOrder: 2}
		admin := &missiongroupDatamodel.MissionGroup{Name: "กลุ่มภารกิจอำนวยการ", Code: "ADMIN", DisplayOrder: 1}
		Expect(db.Create(clinical).Error).To(Succeed())
		Expect(db.Create(admin).Error).To(Succeed())

		for _, d := range []*departmentDatamodel.Department{
			{Name: "กลุ่มงานอายุรกรรม", Status: "ACTIVE", MissionGroupID: &clinical.ID},
			{Name: "กลุ่มงานศัลยกรรม", Status: "ACTIVE", MissionGroupID: &clinical.ID},
			{Name: "กลุ่มงานการเงิน", Status: "ACTIVE"},
			{Name: "งานที่ปิดแล้ว", Status: "INACTIVE"},
		} {
			Expect(db.Create(d).Error).To(Succeed())
		}

		for _, status := range []string{"PENDING", "PENDING", "APPROVED"} {
			a := &applicationDatamodel.ApplicationForm{Status: status}
			a.FirstName = "สุดา"
			Expect(db.Omit("Department").Create(a).Error).To(Succeed())
		}
		r := &resumeDatamodel.ResumeDeposit{Status: "HIRED"}
		r.FirstName = "สมชาย"
		Expect(db.Create(r).Error).To(Succeed())
		Expect(db.Create(&renewalDatamodel.ContractRenewal{EmployeeID: "EMP-1", EmployeeName: "มาลี", FirstName: "มาลี", Status: "REJECTED"}).Error).To(Succeed())

		staff := &userDatamodel.User{Role: "HOSPITAL_STAFF", Status: "ACTIVE"}
		staff.FirstName = "เจ้าหน้าที่"
		Expect(db.Create(staff).Error).To(Succeed())

		d, err := service.Dashboard(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Applications.Total).To(Equal(int64(3)))
		Expect(d.Applications.ByStatus).To(HaveKeyWithValue("PENDING", int64(2)))
		Expect(d.Applications.ByStatus).To(HaveKeyWithValue("REJECTED", int64(0)))
		Expect(d.Resumes.ByStatus).To(HaveKeyWithValue("HIRED", int64(1)))
		Expect(d.ContractRenewals.ByStatus).To(HaveKeyWithValue("REJECTED", int64(1)))
		Expect(d.UsersByRole).To(HaveKeyWithValue("HOSPITAL_STAFF", int64(1)))

		Expect(d.MissionGroups).To(HaveLen(2))
		Expect(d.MissionGroups[0].Code).To(Equal("ADMIN"))
		Expect(d.MissionGroups[0].DepartmentCount).To(BeZero())
		Expect(d.MissionGroups[1].DepartmentCount).To(Equal(int64(2)))
		Expect(d.UnassignedDepartments).To(Equal(int64(1)))
	})
})
