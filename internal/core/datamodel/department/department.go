package department

import (
	"time"

	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/missiongroup"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
	"gorm.io/datatypes"
)

type Department struct {
	ID                   int64                      `json:"id" gorm:"primaryKey"`
	Name                 string                     `json:"name" gorm:"column:name;not null"`
	Code                 *string                    `json:"code,omitempty" gorm:"column:code;uniqueIndex"`
	Description          string                     `json:"description,omitempty" gorm:"column:description"`
	ManagerName          string                     `json:"manager_name,omitempty" gorm:"column:manager_name"`
	ManagerEmail         string                     `json:"manager_email,omitempty" gorm:"column:manager_email"`
	ManagerPhone         string                     `json:"manager_phone,omitempty" gorm:"column:manager_phone"`
	Location             string                     `json:"location,omitempty" gorm:"column:location"`
	EmployeeCount        int                        `json:"employee_count" gorm:"column:employee_count;default:0"`
	Status               string                     `json:"status" gorm:"column:status;not null;default:ACTIVE"`
	Salary               string                     `json:"salary,omitempty" gorm:"column:salary"`
	ApplicationStartDate *time.Time                 `json:"application_start_date,omitempty" gorm:"column:application_start_date;type:date"`
	ApplicationEndDate   *time.Time                 `json:"application_end_date,omitempty" gorm:"column:application_end_date;type:date"`
	EducationRequirement string                     `json:"education_requirement,omitempty" gorm:"column:education_requirement"`
	GenderPreference     string                     `json:"gender_preference" gorm:"column:gender_preference;not null;default:ANY"`
	Positions            datatypes.JSON             `json:"positions,omitempty" gorm:"column:positions"`
	MissionGroupID       *int64                     `json:"mission_group_id" gorm:"column:mission_group_id;index"`
	MissionGroup         *missiongroup.MissionGroup `json:"mission_group,omitempty" gorm:"foreignKey:MissionGroupID;constraint:OnDelete:SET NULL"`
	Attachments          []Attachment               `json:"attachments,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time                  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time                  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Department) TableName() string {
	return "departments"
}

// AcceptsApplicationsOn reports whether an ACTIVE department's application
// window contains day. Open-ended windows are treated as open on that side.
func (d *Department) AcceptsApplicationsOn(day time.Time) bool {
	if d.Status != "ACTIVE" {
		return false
	}
	day = truncateDay(day)
	if d.ApplicationStartDate != nil && day.Before(truncateDay(*d.ApplicationStartDate)) {
		return false
	}
	if d.ApplicationEndDate != nil && day.After(truncateDay(*d.ApplicationEndDate)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Attachment struct {
	ID           int64 `json:"id" gorm:"primaryKey"`
	DepartmentID int64 `json:"department_id" gorm:"column:department_id;not null;index"`
	profile.File
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "department_attachments"
}
