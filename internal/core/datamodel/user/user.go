package user

import (
	"time"

	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
)

type User struct {
	ID     int64   `json:"id" gorm:"primaryKey"`
	LineID *string `json:"line_id,omitempty" gorm:"column:line_id;uniqueIndex"`
	profile.Person
	ProfileImage    string           `json:"profile_image,omitempty" gorm:"column:profile_image"`
	PasswordHash    *string          `json:"-" gorm:"column:password_hash"`
	Role            string           `json:"role" gorm:"column:role;not null;default:APPLICANT"`
	Status          string           `json:"status" gorm:"column:status;not null;default:PENDING"`
	LastLoginAt     *time.Time       `json:"last_login_at,omitempty" gorm:"column:last_login_at"`
	Educations      []Education      `json:"educations" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	WorkExperiences []WorkExperience `json:"work_experiences" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time        `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type Education struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"column:user_id;not null;index"`
	profile.Education
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Education) TableName() string {
	return "user_educations"
}

type WorkExperience struct {
	ID     int64 `json:"id" gorm:"primaryKey"`
	UserID int64 `json:"user_id" gorm:"column:user_id;not null;index"`
	profile.WorkExperience
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (WorkExperience) TableName() string {
	return "user_work_experiences"
}
