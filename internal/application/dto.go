package application

import (
	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
)

// ApplicationDTO is both the submission payload and the full-replace update.
type ApplicationDTO struct {
	DepartmentID    int64                           `json:"department_id" validate:"required,gt=0"`
	Position        string                          `json:"position" validate:"max=255"`
	Person          profileform.PersonDTO           `json:"person"`
	ExpectedSalary  string                          `json:"expected_salary" validate:"max=100"`
	AvailableDate   *dates.Date                     `json:"available_date"`
	Educations      []profileform.EducationDTO      `json:"educations" validate:"max=20,dive"`
	WorkExperiences []profileform.WorkExperienceDTO `json:"work_experiences" validate:"max=30,dive"`
}

type UpdateStatusDTO struct {
	Status      string `json:"status" validate:"required"`
	ReviewNotes string `json:"review_notes" validate:"max=2000"`
}

type ListFilter struct {
	Status       *lifecycle.ApplicationStatus
	DepartmentID *int64
	UserID       *int64
	Search       string
	Page         pagination.Params
}
