package application

import (
	"strings"

	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
)

// Form is a validated submission: the parent row plus the child rows that
// replace whatever is stored.
type Form struct {
	Application     *applicationDatamodel.ApplicationForm
	Educations      []applicationDatamodel.Education
	WorkExperiences []applicationDatamodel.WorkExperience
}

// Build validates dto and copies it onto a. Status, review notes, the user
// link and the submission time are left to the caller.
func Build(a *applicationDatamodel.ApplicationForm, dto *ApplicationDTO) (*Form, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	person, err := profileform.ToPerson("person", &dto.Person)
	if err != nil {
		return nil, err
	}
	works, err := profileform.ToWorkExperiences(dto.WorkExperiences)
	if err != nil {
		return nil, err
	}

	departmentID := dto.DepartmentID
	a.DepartmentID = &departmentID
	a.Department = nil
	a.Position = strings.TrimSpace(dto.Position)
	a.Person = person
	a.ExpectedSalary = strings.TrimSpace(dto.ExpectedSalary)
	a.AvailableDate = dates.Ptr(dto.AvailableDate)

	f := &Form{Application: a}
	for _, e := range profileform.ToEducations(dto.Educations) {
		f.Educations = append(f.Educations, applicationDatamodel.Education{ApplicationID: a.ID, Education: e})
	}
	for _, w := range works {
		f.WorkExperiences = append(f.WorkExperiences, applicationDatamodel.WorkExperience{ApplicationID: a.ID, WorkExperience: w})
	}
	return f, nil
}
