package department

import (
	"time"

	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

// DepartmentDTO is used for both create and full update.
type DepartmentDTO struct {
	Name                 string      `json:"name"`
	Code                 *string     `json:"code" validate:"omitnil,max=50"`
	Description          string      `json:"description" validate:"max=5000"`
	ManagerName          string      `json:"manager_name" validate:"max=255"`
	ManagerEmail         string      `json:"manager_email" validate:"omitempty,email,max=255"`
	ManagerPhone         string      `json:"manager_phone" validate:"max=50"`
	Location             string      `json:"location" validate:"max=255"`
	EmployeeCount        int         `json:"employee_count"`
	Status               string      `json:"status"`
	Salary               string      `json:"salary" validate:"max=255"`
	ApplicationStartDate *dates.Date `json:"application_start_date"`
	ApplicationEndDate   *dates.Date `json:"application_end_date"`
	EducationRequirement string      `json:"education_requirement" validate:"max=2000"`
	GenderPreference     string      `json:"gender_preference"`
	Positions            []string    `json:"positions" validate:"max=50,dive,required,max=255"`
	MissionGroupID       *int64      `json:"mission_group_id" validate:"omitnil,gt=0"`
}

type ListFilter struct {
	Status         *lifecycle.DepartmentStatus
	MissionGroupID *int64
	Search         string
	Page           pagination.Params
}

type MissionGroupSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type AttachmentResponse struct {
	ID        int64     `json:"id"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

type DepartmentResponse struct {
	ID                   int64                `json:"id"`
	Name                 string               `json:"name"`
	Code                 *string              `json:"code,omitempty"`
	Description          string               `json:"description,omitempty"`
	ManagerName          string               `json:"manager_name,omitempty"`
	ManagerEmail         string               `json:"manager_email,omitempty"`
	ManagerPhone         string               `json:"manager_phone,omitempty"`
	Location             string               `json:"location,omitempty"`
	EmployeeCount        int                  `json:"employee_count"`
	Status               string               `json:"status"`
	Salary               string               `json:"salary,omitempty"`
	ApplicationStartDate *dates.Date          `json:"application_start_date"`
	ApplicationEndDate   *dates.Date          `json:"application_end_date"`
	ApplicationPeriod    string               `json:"application_period_th,omitempty"`
	IsOpen               bool                 `json:"is_open"`
	EducationRequirement string               `json:"education_requirement,omitempty"`
	GenderPreference     string               `json:"gender_preference"`
	Positions            []string             `json:"positions"`
	MissionGroupID       *int64               `json:"mission_group_id"`
	MissionGroup         *MissionGroupSummary `json:"mission_group,omitempty"`
	Attachments          []AttachmentResponse `json:"attachments,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

type OpeningsResponse struct {
	Openings []DepartmentResponse `json:"openings"`
	AsOf     dates.Date           `json:"as_of"`
}
