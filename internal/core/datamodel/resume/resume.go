package resume

import (
	"time"

	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"gorm.io/datatypes"
)

type ResumeDeposit struct {
	ID     int64      `json:"id" gorm:"primaryKey"`
	UserID *int64     `json:"user_id" gorm:"column:user_id;index"`
	User   *user.User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	profile.Person
	DesiredPosition    string              `json:"desired_position,omitempty" gorm:"column:desired_position"`
	DesiredDepartment  string              `json:"desired_department,omitempty" gorm:"column:desired_department"`
	ExpectedSalary     string              `json:"expected_salary,omitempty" gorm:"column:expected_salary"`
	AvailableDate      *time.Time          `json:"available_date,omitempty" gorm:"column:available_date;type:date"`
	Skills             datatypes.JSON      `json:"skills,omitempty" gorm:"column:skills"`
	Status             string              `json:"status" gorm:"column:status;not null;default:PENDING"`
	Notes              string              `json:"notes,omitempty" gorm:"column:notes"`
	Educations         []Education         `json:"educations" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	WorkExperiences    []WorkExperience    `json:"work_experiences" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	GovernmentServices []GovernmentService `json:"government_services" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	Documents          []Document          `json:"documents" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (ResumeDeposit) TableName() string {
	return "resume_deposits"
}

type Education struct {
	ID       int64 `json:"id" gorm:"primaryKey"`
	ResumeID int64 `json:"resume_id" gorm:"column:resume_id;not null;index"`
	profile.Education
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Education) TableName() string {
	return "resume_educations"
}

type WorkExperience struct {
	ID       int64 `json:"id" gorm:"primaryKey"`
	ResumeID int64 `json:"resume_id" gorm:"column:resume_id;not null;index"`
	profile.WorkExperience
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (WorkExperience) TableName() string {
	return "resume_work_experiences"
}

// GovernmentService is a previous period of civil or state-enterprise service.
type GovernmentService struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	ResumeID  int64      `json:"resume_id" gorm:"column:resume_id;not null;index"`
	Agency    string     `json:"agency" gorm:"column:agency;not null"`
	Position  string     `json:"position,omitempty" gorm:"column:position"`
	Level     string     `json:"level,omitempty" gorm:"column:level"`
	StartDate *time.Time `json:"start_date,omitempty" gorm:"column:start_date;type:date"`
	EndDate   *time.Time `json:"end_date,omitempty" gorm:"column:end_date;type:date"`
	Reason    string     `json:"reason,omitempty" gorm:"column:reason"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (GovernmentService) TableName() string {
	return "resume_government_services"
}

type Document struct {
	ID           int64  `json:"id" gorm:"primaryKey"`
	ResumeID     int64  `json:"resume_id" gorm:"column:resume_id;not null;index"`
	DocumentType string `json:"document_type" gorm:"column:document_type;not null"`
	profile.File
	UploadedAt time.Time `json:"uploaded_at" gorm:"column:uploaded_at;autoCreateTime"`
}

func (Document) TableName() string {
	return "resume_documents"
}
