package thaidate_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/hospital-careers/internal/thaidate"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestThaiDate(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ThaiDate Suite")
}

var _ = Describe("thaidate", func() {
	day := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	It("adds 543 years for the Buddhist Era", func() {
		Expect(thaidate.BuddhistYear(day)).To(Equal(2568))
	})

	It("formats long, short and numeric forms", func() {
		Expect(thaidate.Format(day)).To(Equal("15 มีนาคม 2568"))
		Expect(thaidate.FormatShort(day)).To(Equal("15 มี.ค. 68"))
		Expect(thaidate.FormatNumeric(day)).To(Equal("15/03/2568"))
		Expect(thaidate.FormatPtr(nil)).To(Equal("-"))
	})

	Describe("ParseBE", func() {
		It("parses a Buddhist Era date", func() {
			t, err := thaidate.ParseBE("15/03/2568")
			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(Equal(day))
		})

		It("accepts Common Era years as they are", func() {
			t, err := thaidate.ParseBE("15/03/2025")
			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(Equal(day))
		})

		It("rejects impossible dates", func() {
			_, err := thaidate.ParseBE("31/02/2568")
			Expect(err).To(HaveOccurred())
			_, err = thaidate.ParseBE("2568-03-15")
			Expect(err).To(HaveOccurred())
		})
	})

	It("computes completed years of age", func() {
		birth := time.Date(1990, time.March, 16, 0, 0, 0, 0, time.UTC)
		Expect(thaidate.Age(birth, day)).To(Equal(34))
		Expect(thaidate.Age(birth, day.AddDate(0, 0, 1))).To(Equal(35))
	})
})
