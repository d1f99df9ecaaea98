package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLifecycle(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lifecycle Suite")
}

var _ = Describe("Enum parsing", func() {
	It("defaults empty gender to UNKNOWN", func() {
		g, err := lifecycle.ParseGender("")
		Expect(err).NotTo(HaveOccurred())
		Expect(g).To(Equal(lifecycle.GenderUnknown))
	})

	It("normalises case and whitespace", func() {
		s, err := lifecycle.ParseResumeStatus("  reviewing ")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(lifecycle.ResumeReviewing))
	})

	It("rejects values outside the set with a validation error", func() {
		_, err := lifecycle.ParseApplicationStatus("DONE")
		Expect(err).To(HaveOccurred())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		Expect(appErr.GetDetailedMessage()).To(ContainSubstring("PENDING, APPROVED, REJECTED"))
	})

	It("defaults missing statuses to the initial lifecycle state", func() {
		a, _ := lifecycle.ParseApplicationStatus("")
		r, _ := lifecycle.ParseResumeStatus("")
		c, _ := lifecycle.ParseRenewalStatus("")
		Expect(a).To(Equal(lifecycle.ApplicationPending))
		Expect(r).To(Equal(lifecycle.ResumePending))
		Expect(c).To(Equal(lifecycle.RenewalPending))
	})

	It("labels untyped documents OTHER", func() {
		d, err := lifecycle.ParseDocumentType("")
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal(lifecycle.DocumentOther))

		_, err = lifecycle.ParseDocumentType("selfie")
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidEnum))
	})

	It("treats an empty filter as no filter", func() {
		f, err := lifecycle.ParseStatusFilter("", lifecycle.ApplicationStatuses)
		Expect(err).NotTo(HaveOccurred())
		Expect(f).To(BeNil())

		f, err = lifecycle.ParseStatusFilter("approved", lifecycle.ApplicationStatuses)
		Expect(err).NotTo(HaveOccurred())
		Expect(*f).To(Equal(lifecycle.ApplicationApproved))
	})
})

var _ = Describe("Transitions", func() {
	DescribeTable("application",
		func(from, to lifecycle.ApplicationStatus, allowed bool) {
			Expect(from.CanTransitionTo(to)).To(Equal(allowed))
		},
		Entry("pending to approved", lifecycle.ApplicationPending, lifecycle.ApplicationApproved, true),
		Entry("pending to rejected", lifecycle.ApplicationPending, lifecycle.ApplicationRejected, true),
		Entry("approved to rejected", lifecycle.ApplicationApproved, lifecycle.ApplicationRejected, true),
		Entry("rejected back to pending", lifecycle.ApplicationRejected, lifecycle.ApplicationPending, false),
	)

	DescribeTable("resume",
		func(from, to lifecycle.ResumeStatus, allowed bool) {
			Expect(from.CanTransitionTo(to)).To(Equal(allowed))
		},
		Entry("pending to reviewing", lifecycle.ResumePending, lifecycle.ResumeReviewing, true),
		Entry("pending straight to contacted", lifecycle.ResumePending, lifecycle.ResumeContacted, true),
		Entry("contacted to hired", lifecycle.ResumeContacted, lifecycle.ResumeHired, true),
		Entry("hired to rejected", lifecycle.ResumeHired, lifecycle.ResumeRejected, false),
		Entry("rejected to archived", lifecycle.ResumeRejected, lifecycle.ResumeArchived, true),
		Entry("archived to pending", lifecycle.ResumeArchived, lifecycle.ResumePending, false),
		Entry("reviewing back to pending", lifecycle.ResumeReviewing, lifecycle.ResumePending, false),
	)

	DescribeTable("contract renewal",
		func(from, to lifecycle.RenewalStatus, allowed bool) {
			Expect(from.CanTransitionTo(to)).To(Equal(allowed))
		},
		Entry("pending to approved", lifecycle.RenewalPending, lifecycle.RenewalApproved, true),
		Entry("pending to rejected", lifecycle.RenewalPending, lifecycle.RenewalRejected, true),
		Entry("approved to rejected", lifecycle.RenewalApproved, lifecycle.RenewalRejected, false),
	)

	It("produces an error that matches the transition sentinel", func() {
		err := lifecycle.TransitionError(lifecycle.RenewalApproved, lifecycle.RenewalPending)
		Expect(errors.Is(err, internal.ErrInvalidStatusTransition)).To(BeTrue())
		Expect(err.StatusCode).To(Equal(400))
		Expect(err.GetDetailedMessage()).To(ContainSubstring("APPROVED to PENDING"))
	})
})
