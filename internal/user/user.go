package user

import (
	"strings"

	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
)

// Profile is a validated ProfileDTO ready to be written.
type Profile struct {
	User            *userDatamodel.User
	Educations      []userDatamodel.Education
	WorkExperiences []userDatamodel.WorkExperience
}

// BuildProfile validates dto and copies it onto u. u keeps its identity,
// role, status and image; children are returned separately for replacement.
func BuildProfile(u *userDatamodel.User, dto *ProfileDTO) (*Profile, error) {
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

	u.Person = person
	p := &Profile{User: u}
	for _, e := range profileform.ToEducations(dto.Educations) {
		p.Educations = append(p.Educations, userDatamodel.Education{UserID: u.ID, Education: e})
	}
	for _, w := range works {
		p.WorkExperiences = append(p.WorkExperiences, userDatamodel.WorkExperience{UserID: u.ID, WorkExperience: w})
	}
	return p, nil
}

func NewApplicant(lineID string) *userDatamodel.User {
	id := strings.TrimSpace(lineID)
	return &userDatamodel.User{
		LineID: &id,
		Role:   string(lifecycle.RoleApplicant),
		Status: string(lifecycle.UserPending),
	}
}
