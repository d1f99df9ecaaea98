package resume

import (
	"mime/multipart"

	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
)

type ResumeDTO struct {
	Person             profileform.PersonDTO           `json:"person"`
	DesiredPosition    string                          `json:"desired_position" validate:"max=255"`
	DesiredDepartment  string                          `json:"desired_department" validate:"max=255"`
	ExpectedSalary     string                          `json:"expected_salary" validate:"max=100"`
	AvailableDate      *dates.Date                     `json:"available_date"`
	Skills             []string                        `json:"skills" validate:"max=50,dive,max=100"`
	Notes              string                          `json:"notes" validate:"max=2000"`
	Educations         []profileform.EducationDTO      `json:"educations" validate:"max=20,dive"`
	WorkExperiences    []profileform.WorkExperienceDTO `json:"work_experiences" validate:"max=30,dive"`
	GovernmentServices []GovernmentServiceDTO          `json:"government_services" validate:"max=20,dive"`
}

// MaxCreateDocuments caps the files sent together with a new deposit.
const MaxCreateDocuments = 10

// DocumentUpload is a file submitted in the same request as a new deposit.
// An empty DocumentType is stored as OTHER.
type DocumentUpload struct {
	DocumentType string
	File         *multipart.FileHeader
}

type GovernmentServiceDTO struct {
	Agency    string      `json:"agency" validate:"required,max=255"`
	Position  string      `json:"position" validate:"max=255"`
	Level     string      `json:"level" validate:"max=100"`
	StartDate *dates.Date `json:"start_date"`
	EndDate   *dates.Date `json:"end_date"`
	Reason    string      `json:"reason" validate:"max=1000"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

type ListFilter struct {
	Status *lifecycle.ResumeStatus
	UserID *int64
	Search string
	Page   pagination.Params
}
