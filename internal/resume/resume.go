package resume

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	resumeDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/resume"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
	"gorm.io/datatypes"
)

// Deposit is a validated resume with the child rows that replace what is stored.
type Deposit struct {
	Resume             *resumeDatamodel.ResumeDeposit
	Educations         []resumeDatamodel.Education
	WorkExperiences    []resumeDatamodel.WorkExperience
	GovernmentServices []resumeDatamodel.GovernmentService
	// Documents are only inserted on create; updates leave stored documents alone.
	Documents []resumeDatamodel.Document
}

// Build validates dto and copies it onto r. Status and the user link are
// left untouched.
func Build(r *resumeDatamodel.ResumeDeposit, dto *ResumeDTO) (*Deposit, error) {
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
	services, err := toGovernmentServices(dto.GovernmentServices)
	if err != nil {
		return nil, err
	}
	skills, err := encodeSkills(dto.Skills)
	if err != nil {
		return nil, err
	}

	r.Person = person
	r.DesiredPosition = strings.TrimSpace(dto.DesiredPosition)
	r.DesiredDepartment = strings.TrimSpace(dto.DesiredDepartment)
	r.ExpectedSalary = strings.TrimSpace(dto.ExpectedSalary)
	r.AvailableDate = dates.Ptr(dto.AvailableDate)
	r.Skills = skills
	r.Notes = dto.Notes

	d := &Deposit{Resume: r, GovernmentServices: services}
	for _, e := range profileform.ToEducations(dto.Educations) {
		d.Educations = append(d.Educations, resumeDatamodel.Education{ResumeID: r.ID, Education: e})
	}
	for _, w := range works {
		d.WorkExperiences = append(d.WorkExperiences, resumeDatamodel.WorkExperience{ResumeID: r.ID, WorkExperience: w})
	}
	return d, nil
}

func toGovernmentServices(dtos []GovernmentServiceDTO) ([]resumeDatamodel.GovernmentService, error) {
	out := make([]resumeDatamodel.GovernmentService, 0, len(dtos))
	for i, g := range dtos {
		start, end := dates.Ptr(g.StartDate), dates.Ptr(g.EndDate)
		prefix := fmt.Sprintf("government_services[%d]", i)
		if appErr := validation.ValidateDateRange(prefix+".start_date", start, prefix+".end_date", end); appErr != nil {
			return nil, appErr
		}
		out = append(out, resumeDatamodel.GovernmentService{
			Agency:    strings.TrimSpace(g.Agency),
			Position:  strings.TrimSpace(g.Position),
			Level:     strings.TrimSpace(g.Level),
			StartDate: start,
			EndDate:   end,
			Reason:    g.Reason,
		})
	}
	return out, nil
}

// encodeSkills trims, drops blanks and de-duplicates while keeping order.
func encodeSkills(raw []string) (datatypes.JSON, error) {
	seen := make(map[string]bool, len(raw))
	skills := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	encoded, err := json.Marshal(skills)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

func Skills(r *resumeDatamodel.ResumeDeposit) []string {
	var skills []string
	if len(r.Skills) == 0 {
		return skills
	}
	_ = json.Unmarshal(r.Skills, &skills)
	return skills
}
