// Package profileform holds the personal-data, education and work-history
// payloads shared by registration, application forms and resume deposits, and
// converts them into the stored column groups.
package profileform

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

type PersonDTO struct {
	Prefix        string      `json:"prefix" validate:"max=50"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name" validate:"max=255"`
	Nickname      string      `json:"nickname" validate:"max=100"`
	Gender        string      `json:"gender"`
	BirthDate     *dates.Date `json:"birth_date"`
	Nationality   string      `json:"nationality" validate:"max=100"`
	Religion      string      `json:"religion" validate:"max=100"`
	MaritalStatus string      `json:"marital_status"`
	IDCardNumber  string      `json:"id_card_number" validate:"omitempty,thai_id"`
	Email         string      `json:"email" validate:"omitempty,email,max=255"`
	Phone         string      `json:"phone" validate:"max=50"`
	Address       string      `json:"address" validate:"max=2000"`
}

type EducationDTO struct {
	Level          string `json:"level" validate:"required,max=100"`
	Institution    string `json:"institution" validate:"required,max=255"`
	Major          string `json:"major" validate:"max=255"`
	GPA            string `json:"gpa" validate:"max=10"`
	GraduationYear string `json:"graduation_year" validate:"max=10"`
}

type WorkExperienceDTO struct {
	CompanyName      string      `json:"company_name" validate:"required,max=255"`
	Position         string      `json:"position" validate:"max=255"`
	StartDate        *dates.Date `json:"start_date"`
	EndDate          *dates.Date `json:"end_date"`
	IsCurrent        bool        `json:"is_current"`
	Salary           string      `json:"salary" validate:"max=100"`
	Description      string      `json:"description" validate:"max=2000"`
	ReasonForLeaving string      `json:"reason_for_leaving" validate:"max=1000"`
}

// ToPerson parses the enums of dto and checks the first name and birth date.
// Struct tags are expected to have been checked by the caller as part of the
// enclosing payload.
func ToPerson(field string, dto *PersonDTO) (profile.Person, error) {
	gender, err := lifecycle.ParseGender(dto.Gender)
	if err != nil {
		return profile.Person{}, err
	}
	marital, err := lifecycle.ParseMaritalStatus(dto.MaritalStatus)
	if err != nil {
		return profile.Person{}, err
	}

	birth := dates.Ptr(dto.BirthDate)
	v := validation.NewValidator()
	v.Field(field+".first_name", strings.TrimSpace(dto.FirstName)).Required().MaxLength(255)
	v.Field(field+".birth_date", birth).NotFuture()
	if appErr := v.Validate(); appErr != nil {
		return profile.Person{}, appErr
	}

	return profile.Person{
		Prefix:        strings.TrimSpace(dto.Prefix),
		FirstName:     strings.TrimSpace(dto.FirstName),
		LastName:      strings.TrimSpace(dto.LastName),
		Nickname:      strings.TrimSpace(dto.Nickname),
		Gender:        string(gender),
		BirthDate:     birth,
		Nationality:   strings.TrimSpace(dto.Nationality),
		Religion:      strings.TrimSpace(dto.Religion),
		MaritalStatus: string(marital),
		IDCardNumber:  strings.TrimSpace(dto.IDCardNumber),
		Email:         strings.ToLower(strings.TrimSpace(dto.Email)),
		Phone:         strings.TrimSpace(dto.Phone),
		Address:       strings.TrimSpace(dto.Address),
	}, nil
}

func ToEducations(dtos []EducationDTO) []profile.Education {
	out := make([]profile.Education, 0, len(dtos))
	for _, e := range dtos {
		out = append(out, profile.Education{
			Level:          strings.TrimSpace(e.Level),
			Institution:    strings.TrimSpace(e.Institution),
			Major:          strings.TrimSpace(e.Major),
			GPA:            strings.TrimSpace(e.GPA),
			GraduationYear: strings.TrimSpace(e.GraduationYear),
		})
	}
	return out
}

// ToWorkExperiences checks each date range; a current job has no end date.
func ToWorkExperiences(dtos []WorkExperienceDTO) ([]profile.WorkExperience, error) {
	out := make([]profile.WorkExperience, 0, len(dtos))
	for i, w := range dtos {
		start, end := dates.Ptr(w.StartDate), dates.Ptr(w.EndDate)
		if w.IsCurrent {
			end = nil
		}
		prefix := fmt.Sprintf("work_experiences[%d]", i)
		if appErr := validation.ValidateDateRange(prefix+".start_date", start, prefix+".end_date", end); appErr != nil {
			return nil, appErr
		}
		out = append(out, profile.WorkExperience{
			CompanyName:      strings.TrimSpace(w.CompanyName),
			Position:         strings.TrimSpace(w.Position),
			StartDate:        start,
			EndDate:          end,
			IsCurrent:        w.IsCurrent,
			Salary:           strings.TrimSpace(w.Salary),
			Description:      w.Description,
			ReasonForLeaving: w.ReasonForLeaving,
		})
	}
	return out, nil
}
