package application

import (
	"time"

	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
)

type ApplicationForm struct {
	ID           int64                  `json:"id" gorm:"primaryKey"`
	UserID       *int64                 `json:"user_id" gorm:"column:user_id;index"`
	User         *user.User             `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	DepartmentID *int64                 `json:"department_id" gorm:"column:department_id;index"`
	Department   *department.Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL"`
	Position     string                 `json:"position" gorm:"column:position"`
	profile.Person
	ExpectedSalary  string           `json:"expected_salary,omitempty" gorm:"column:expected_salary"`
	AvailableDate   *time.Time       `json:"available_date,omitempty" gorm:"column:available_date;type:date"`
	Status          string           `json:"status" gorm:"column:status;not null;default:PENDING"`
	ReviewNotes     string           `json:"review_notes,omitempty" gorm:"column:review_notes"`
	SubmittedAt     time.Time        `json:"submitted_at" gorm:"column:submitted_at"`
	Educations      []Education      `json:"educations" gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	WorkExperiences []WorkExperience `json:"work_experiences" gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	Documents       []Document       `json:"documents" gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (ApplicationForm) TableName() string {
	return "application_forms"
}

type Education struct {
	ID            int64 `json:"id" gorm:"primaryKey"`
	ApplicationID int64 `json:"application_id" gorm:"column:application_id;not null;index"`
	profile.Education
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Education) TableName() string {
	return "application_educations"
}

type WorkExperience struct {
	ID            int64 `json:"id" gorm:"primaryKey"`
	ApplicationID int64 `json:"application_id" gorm:"column:application_id;not null;index"`
	profile.WorkExperience
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (WorkExperience) TableName() string {
	return "application_work_experiences"
}

type Document struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	ApplicationID int64  `json:"application_id" gorm:"column:application_id;not null;index"`
	DocumentType  string `json:"document_type" gorm:"column:document_type;not null"`
	profile.File
	UploadedAt time.Time `json:"uploaded_at" gorm:"column:uploaded_at;autoCreateTime"`
}

func (Document) TableName() string {
	return "application_documents"
}
