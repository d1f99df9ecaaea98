package user

import (
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
)

// ProfileDTO is the registration payload and the full-replace profile update.
type ProfileDTO struct {
	Person          profileform.PersonDTO           `json:"person"`
	Educations      []profileform.EducationDTO      `json:"educations" validate:"max=20,dive"`
	WorkExperiences []profileform.WorkExperienceDTO `json:"work_experiences" validate:"max=30,dive"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

type ListFilter struct {
	Role   *lifecycle.UserRole
	Status *lifecycle.UserStatus
	Search string
	Page   pagination.Params
}
