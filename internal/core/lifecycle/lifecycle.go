// Package lifecycle holds the closed status and category enums of the portal
// and the rules for moving records between states.
//
// Every Parse function follows one policy: an empty value yields the field's
// documented default, a value outside the set is rejected with a validation
// AppError naming the field and the allowed values. Input is trimmed and
// upper-cased before matching.
package lifecycle

import (
	"fmt"
	"strings"

	errors "github.com/frahmantamala/hospital-careers/internal"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

var ApplicationStatuses = []ApplicationStatus{ApplicationPending, ApplicationApproved, ApplicationRejected}

type ResumeStatus string

const (
	ResumePending   ResumeStatus = "PENDING"
	ResumeReviewing ResumeStatus = "REVIEWING"
	ResumeContacted ResumeStatus = "CONTACTED"
	ResumeHired     ResumeStatus = "HIRED"
	ResumeRejected  ResumeStatus = "REJECTED"
	ResumeArchived  ResumeStatus = "ARCHIVED"
)

var ResumeStatuses = []ResumeStatus{ResumePending, ResumeReviewing, ResumeContacted, ResumeHired, ResumeRejected, ResumeArchived}

type RenewalStatus string

const (
	RenewalPending  RenewalStatus = "PENDING"
	RenewalApproved RenewalStatus = "APPROVED"
	RenewalRejected RenewalStatus = "REJECTED"
)

var RenewalStatuses = []RenewalStatus{RenewalPending, RenewalApproved, RenewalRejected}

type DepartmentStatus string

const (
	DepartmentActive   DepartmentStatus = "ACTIVE"
	DepartmentInactive DepartmentStatus = "INACTIVE"
	DepartmentPending  DepartmentStatus = "PENDING"
)

var DepartmentStatuses = []DepartmentStatus{DepartmentActive, DepartmentInactive, DepartmentPending}

type MissionGroupStatus string

const (
	MissionGroupActive   MissionGroupStatus = "ACTIVE"
	MissionGroupInactive MissionGroupStatus = "INACTIVE"
)

var MissionGroupStatuses = []MissionGroupStatus{MissionGroupActive, MissionGroupInactive}

type UserRole string

const (
	RoleApplicant     UserRole = "APPLICANT"
	RoleHospitalStaff UserRole = "HOSPITAL_STAFF"
	RoleAdmin         UserRole = "ADMIN"
)

var UserRoles = []UserRole{RoleApplicant, RoleHospitalStaff, RoleAdmin}

type UserStatus string

const (
	UserPending  UserStatus = "PENDING"
	UserActive   UserStatus = "ACTIVE"
	UserInactive UserStatus = "INACTIVE"
)

var UserStatuses = []UserStatus{UserPending, UserActive, UserInactive}

type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderUnknown}

type GenderPreference string

const (
	PreferMale   GenderPreference = "MALE"
	PreferFemale GenderPreference = "FEMALE"
	PreferAny    GenderPreference = "ANY"
)

var GenderPreferences = []GenderPreference{PreferMale, PreferFemale, PreferAny}

type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "SINGLE"
	MaritalMarried  MaritalStatus = "MARRIED"
	MaritalDivorced MaritalStatus = "DIVORCED"
	MaritalWidowed  MaritalStatus = "WIDOWED"
	MaritalUnknown  MaritalStatus = "UNKNOWN"
)

var MaritalStatuses = []MaritalStatus{MaritalSingle, MaritalMarried, MaritalDivorced, MaritalWidowed, MaritalUnknown}

// DocumentType labels an uploaded application or resume document.
type DocumentType string

const (
	DocumentIDCard            DocumentType = "ID_CARD"
	DocumentHouseRegistration DocumentType = "HOUSE_REGISTRATION"
	DocumentTranscript        DocumentType = "TRANSCRIPT"
	DocumentCertificate       DocumentType = "CERTIFICATE"
	DocumentPhoto             DocumentType = "PHOTO"
	DocumentResume            DocumentType = "RESUME"
	DocumentOther             DocumentType = "OTHER"
)

var DocumentTypes = []DocumentType{
	DocumentIDCard, DocumentHouseRegistration, DocumentTranscript,
	DocumentCertificate, DocumentPhoto, DocumentResume, DocumentOther,
}

func parse[T ~string](field, raw string, def T, allowed []T) (T, error) {
	v := strings.ToUpper(strings.TrimSpace(raw))
	if v == "" {
		return def, nil
	}
	for _, a := range allowed {
		if string(a) == v {
			return a, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	msg := fmt.Sprintf("%s must be one of %s, got %q", field, strings.Join(names, ", "), raw)
	return def, errors.NewValidationFieldError(field, msg, errors.ErrCodeInvalidEnum)
}

func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	return parse("status", raw, ApplicationPending, ApplicationStatuses)
}

func ParseResumeStatus(raw string) (ResumeStatus, error) {
	return parse("status", raw, ResumePending, ResumeStatuses)
}

func ParseRenewalStatus(raw string) (RenewalStatus, error) {
	return parse("status", raw, RenewalPending, RenewalStatuses)
}

func ParseDepartmentStatus(raw string) (DepartmentStatus, error) {
	return parse("status", raw, DepartmentActive, DepartmentStatuses)
}

func ParseMissionGroupStatus(raw string) (MissionGroupStatus, error) {
	return parse("status", raw, MissionGroupActive, MissionGroupStatuses)
}

func ParseUserRole(raw string) (UserRole, error) {
	return parse("role", raw, RoleApplicant, UserRoles)
}

func ParseUserStatus(raw string) (UserStatus, error) {
	return parse("status", raw, UserPending, UserStatuses)
}

func ParseGender(raw string) (Gender, error) {
	return parse("gender", raw, GenderUnknown, Genders)
}

func ParseGenderPreference(raw string) (GenderPreference, error) {
	return parse("gender_preference", raw, PreferAny, GenderPreferences)
}

func ParseMaritalStatus(raw string) (MaritalStatus, error) {
	return parse("marital_status", raw, MaritalUnknown, MaritalStatuses)
}

func ParseDocumentType(raw string) (DocumentType, error) {
	return parse("document_type", raw, DocumentOther, DocumentTypes)
}

// ParseStatusFilter is used for list filters, where an empty value means "no filter".
func ParseStatusFilter[T ~string](raw string, allowed []T) (*T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var zero T
	v, err := parse("status", raw, zero, allowed)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
