package pdfform_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	departmentDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
	"github.com/frahmantamala/hospital-careers/internal/pdfform"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPDFForm(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PDF Form Suite")
}

var _ = Describe("FPDFRenderer", func() {
	birth := time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)
	form := &applicationDatamodel.ApplicationForm{
		ID:          12,
		Department:  &departmentDatamodel.Department{Name: "กลุ่มงานการพยาบาล"},
		Position:    "Registered nurse",
		Status:      "PENDING",
		SubmittedAt: time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC),
		Person: profile.Person{
			Prefix:    "Ms.",
			FirstName: "Suda",
			LastName:  "Jaidee",
			BirthDate: &birth,
		},
		Educations: []applicationDatamodel.Education{
			{Education: profile.Education{Level: "Bachelor", Institution: "Mahidol University"}},
		},
		WorkExperiences: []applicationDatamodel.WorkExperience{
			{WorkExperience: profile.WorkExperience{CompanyName: "City Hospital", IsCurrent: true}},
		},
	}

	It("renders a PDF with the core font", func() {
		r, err := pdfform.NewRenderer(internal.PDFConfig{})
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(r.Render(&buf, form)).To(Succeed())
		Expect(buf.String()).To(HavePrefix("%PDF-"))
		Expect(buf.Len()).To(BeNumerically(">", 500))
	})

	It("renders a form without children", func() {
		r, err := pdfform.NewRenderer(internal.PDFConfig{})
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(r.Render(&buf, &applicationDatamodel.ApplicationForm{ID: 1, Person: profile.Person{FirstName: "สมชาย"}})).To(Succeed())
		Expect(buf.String()).To(HavePrefix("%PDF-"))
	})

	It("fails fast on a missing font file", func() {
		_, err := pdfform.NewRenderer(internal.PDFConfig{FontPath: "/nonexistent/THSarabunNew.ttf"})
		Expect(err).To(HaveOccurred())
	})
})
