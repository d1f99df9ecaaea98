package missiongroup_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/dbtest"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	"github.com/frahmantamala/hospital-careers/internal/missiongroup"
	missiongroupPostgres "github.com/frahmantamala/hospital-careers/internal/missiongroup/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestMissionGroup(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "MissionGroup Suite")
}

var _ = Describe("Mapping", func() {
	var mapping *missiongroup.Mapping

	BeforeEach(func() {
		var err error
		mapping, err = missiongroup.DefaultMapping()
		Expect(err).NotTo(HaveOccurred())
	})

	It("ships the four hospital mission groups in order", func() {
		codes := make([]string, 0, len(mapping.Groups))
		for _, g := range mapping.Groups {
			codes = append(codes, g.Code)
		}
		Expect(codes).To(Equal([]string{"ADMINISTRATION", "PRIMARY_CARE", "TERTIARY_CARE", "NURSING"}))
	})

	DescribeTable("matching department names",
		func(name, expected string, ok bool) {
			code, matched := mapping.Match(name)
			Expect(matched).To(Equal(ok))
			Expect(code).To(Equal(expected))
		},
		Entry("exact canonical name", "กลุ่มงานศัลยกรรม", "TERTIARY_CARE", true),
		Entry("department name containing a canonical name", "กลุ่มงานการเงิน (สำนักงาน)", "ADMINISTRATION", true),
		Entry("short name contained in a canonical name", "เวชศาสตร์ครอบครัว", "PRIMARY_CARE", true),
		Entry("nursing unit", "งานการพยาบาลผู้ป่วยหนัก", "NURSING", true),
		Entry("surrounding whitespace", "  กลุ่มงานทันตกรรม ", "TERTIARY_CARE", true),
		Entry("unknown name", "Cafeteria", "", false),
		Entry("empty name", "   ", "", false),
	)

	It("returns the first match in file order", func() {
		m, err := missiongroup.ParseMapping([]byte(`
groups:
  - code: FIRST
    name: first
    departments: [งานยา]
  - code: SECOND
    name: second
    departments: [กลุ่มงานยา]
`))
		Expect(err).NotTo(HaveOccurred())
		code, ok := m.Match("กลุ่มงานยา")
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal("FIRST"))
	})

	It("rejects duplicate group codes", func() {
		_, err := missiongroup.ParseMapping([]byte(`
groups:
  - {code: A, name: a}
  - {code: A, name: b}
`))
		Expect(err).To(MatchError(ContainSubstring("duplicate")))
	})
})

var _ = Describe("Service", func() {
	var (
		db      *gorm.DB
		service *missiongroup.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		var err error
		db, err = dbtest.Open()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { _ = dbtest.Close(db) })

		mapping, err := missiongroup.DefaultMapping()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = missiongroup.NewService(missiongroupPostgres.NewMissionGroupRepository(db), mapping, slogger)
		ctx = context.Background()

		Expect(service.Seed(ctx)).To(Succeed())
	})

	groupID := func(code string) int64 {
		groups, err := service.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		for _, g := range groups {
			if g.Code == code {
				return g.ID
			}
		}
		Fail("mission group " + code + " not seeded")
		return 0
	}

	createDepartment := func(name string, groupID *int64) *department.Department {
		d := &department.Department{Name: name, Status: "ACTIVE", GenderPreference: "ANY", MissionGroupID: groupID}
		Expect(db.Create(d).Error).To(Succeed())
		return d
	}

	reload := func(id int64) *department.Department {
		var d department.Department
		Expect(db.First(&d, id).Error).To(Succeed())
		return &d
	}

	Describe("Seed", func() {
		It("is safe to run twice", func() {
			Expect(service.Seed(ctx)).To(Succeed())
			groups, err := service.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(HaveLen(4))
			Expect(groups[0].DisplayOrder).To(Equal(1))
		})
	})

	Describe("MapDepartments", func() {
		It("assigns a surgical department to the tertiary care group", func() {
			d := createDepartment("กลุ่มงานศัลยกรรม", nil)

			report, err := service.MapDepartments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Updated).To(Equal(1))

			stored := reload(d.ID)
			Expect(stored.MissionGroupID).NotTo(BeNil())
			Expect(*stored.MissionGroupID).To(Equal(groupID("TERTIARY_CARE")))
		})

		It("is idempotent", func() {
			surgery := createDepartment("กลุ่มงานศัลยกรรม", nil)
			finance := createDepartment("กลุ่มงานการเงิน", nil)
			createDepartment("ร้านกาแฟ", nil)

			first, err := service.MapDepartments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Updated).To(Equal(2))

			second, err := service.MapDepartments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Updated).To(BeZero())
			Expect(second.Matched).To(HaveLen(2))
			for _, a := range second.Matched {
				Expect(a.Changed).To(BeFalse())
			}

			Expect(*reload(surgery.ID).MissionGroupID).To(Equal(groupID("TERTIARY_CARE")))
			Expect(*reload(finance.ID).MissionGroupID).To(Equal(groupID("ADMINISTRATION")))
		})

		It("reports unmatched departments and leaves them alone", func() {
			nursing := groupID("NURSING")
			manual := createDepartment("ร้านกาแฟ", &nursing)
			orphan := createDepartment("Parking", nil)

			report, err := service.MapDepartments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Unmatched).To(ConsistOf(
				missiongroup.Unmatched{DepartmentID: manual.ID, DepartmentName: "ร้านกาแฟ"},
				missiongroup.Unmatched{DepartmentID: orphan.ID, DepartmentName: "Parking"},
			))
			Expect(*reload(manual.ID).MissionGroupID).To(Equal(nursing))
			Expect(reload(orphan.ID).MissionGroupID).To(BeNil())
		})

		It("corrects a department sitting in the wrong group", func() {
			admin := groupID("ADMINISTRATION")
			d := createDepartment("กลุ่มงานอายุรกรรม", &admin)

			report, err := service.MapDepartments(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Updated).To(Equal(1))
			Expect(*reload(d.ID).MissionGroupID).To(Equal(groupID("TERTIARY_CARE")))
		})
	})

	Describe("AssignDepartment", func() {
		It("sets and clears the link", func() {
			d := createDepartment("งานใหม่", nil)
			primary := groupID("PRIMARY_CARE")

			Expect(service.AssignDepartment(ctx, d.ID, &primary)).To(Succeed())
			Expect(*reload(d.ID).MissionGroupID).To(Equal(primary))

			Expect(service.AssignDepartment(ctx, d.ID, nil)).To(Succeed())
			Expect(reload(d.ID).MissionGroupID).To(BeNil())
		})

		It("rejects unknown groups and departments", func() {
			d := createDepartment("งานใหม่", nil)
			missing := int64(9999)

			err := service.AssignDepartment(ctx, d.ID, &missing)
			Expect(errors.Is(err, internal.ErrMissionGroupNotFound)).To(BeTrue())

			err = service.AssignDepartment(ctx, 9999, nil)
			Expect(errors.Is(err, internal.ErrDepartmentNotFound)).To(BeTrue())
		})
	})

	Describe("CRUD", func() {
		It("counts departments per group", func() {
			tertiary := groupID("TERTIARY_CARE")
			createDepartment("กลุ่มงานศัลยกรรม", &tertiary)
			createDepartment("กลุ่มงานอายุรกรรม", &tertiary)

			mg, err := service.Get(ctx, tertiary)
			Expect(err).NotTo(HaveOccurred())
			Expect(mg.DepartmentCount).To(Equal(int64(2)))
		})

		It("rejects a duplicate code", func() {
			_, err := service.Create(ctx, &missiongroup.CreateMissionGroupDTO{Name: "Nursing again", Code: "nursing"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeDuplicate))
		})

		It("rejects an unknown status", func() {
			status := "ARCHIVED"
			_, err := service.Update(ctx, groupID("NURSING"), &missiongroup.UpdateMissionGroupDTO{Status: &status})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEnum))
		})

		It("keeps departments when their group is deleted", func() {
			nursing := groupID("NURSING")
			d := createDepartment("งานการพยาบาลผู้ป่วยนอก", &nursing)

			Expect(service.Delete(ctx, nursing)).To(Succeed())

			stored := reload(d.ID)
			Expect(stored.MissionGroupID).To(BeNil())
			_, err := service.Get(ctx, nursing)
			Expect(errors.Is(err, internal.ErrMissionGroupNotFound)).To(BeTrue())
		})
	})
})
