package lifecycle

import (
	"fmt"

	errors "github.com/frahmantamala/hospital-careers/internal"
)

// An application decision can be revised between APPROVED and REJECTED,
// but never returned to PENDING.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:  {ApplicationApproved, ApplicationRejected},
	ApplicationApproved: {ApplicationRejected},
	ApplicationRejected: {ApplicationApproved},
}

// Resume deposits only move forward. HIRED and REJECTED share a rank so one
// cannot flip into the other; ARCHIVED is reachable from everything.
var resumeRank = map[ResumeStatus]int{
	ResumePending:   0,
	ResumeReviewing: 1,
	ResumeContacted: 2,
	ResumeHired:     3,
	ResumeRejected:  3,
	ResumeArchived:  4,
}

var renewalTransitions = map[RenewalStatus][]RenewalStatus{
	RenewalPending: {RenewalApproved, RenewalRejected},
}

func (s ApplicationStatus) CanTransitionTo(to ApplicationStatus) bool {
	for _, next := range applicationTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s ResumeStatus) CanTransitionTo(to ResumeStatus) bool {
	from, ok := resumeRank[s]
	if !ok {
		return false
	}
	next, ok := resumeRank[to]
	if !ok {
		return false
	}
	return next > from
}

func (s RenewalStatus) CanTransitionTo(to RenewalStatus) bool {
	for _, next := range renewalTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s RenewalStatus) IsFinal() bool {
	return s == RenewalApproved || s == RenewalRejected
}

func (s ResumeStatus) IsFinal() bool {
	return s == ResumeArchived
}

// TransitionError builds the validation error returned when a guard refuses a move.
func TransitionError[T ~string](from, to T) *errors.AppError {
	return errors.ErrInvalidStatusTransition.Clone().WithDetails(errors.ValidationErrors{
		Errors: []errors.ValidationError{{
			Field:   "status",
			Message: fmt.Sprintf("cannot change status from %s to %s", from, to),
			Code:    string(errors.ErrCodeInvalidStatusTransition),
		}},
	})
}
