// Package profile holds the column groups shared by users, application forms
// and resume deposits. They are embedded into the owning tables.
package profile

import "time"

type Person struct {
	Prefix        string     `json:"prefix" gorm:"column:prefix"`
	FirstName     string     `json:"first_name" gorm:"column:first_name;not null"`
	LastName      string     `json:"last_name" gorm:"column:last_name"`
	Nickname      string     `json:"nickname,omitempty" gorm:"column:nickname"`
	Gender        string     `json:"gender" gorm:"column:gender;not null;default:UNKNOWN"`
	BirthDate     *time.Time `json:"birth_date,omitempty" gorm:"column:birth_date;type:date"`
	Nationality   string     `json:"nationality,omitempty" gorm:"column:nationality"`
	Religion      string     `json:"religion,omitempty" gorm:"column:religion"`
	MaritalStatus string     `json:"marital_status" gorm:"column:marital_status;not null;default:UNKNOWN"`
	IDCardNumber  string     `json:"id_card_number,omitempty" gorm:"column:id_card_number"`
	Email         string     `json:"email" gorm:"column:email"`
	Phone         string     `json:"phone,omitempty" gorm:"column:phone"`
	Address       string     `json:"address,omitempty" gorm:"column:address"`
}

func (p Person) FullName() string {
	name := p.FirstName
	if p.LastName != "" {
		name += " " + p.LastName
	}
	if p.Prefix != "" {
		name = p.Prefix + name
	}
	return name
}

type Education struct {
	Level          string `json:"level" gorm:"column:level;not null"`
	Institution    string `json:"institution" gorm:"column:institution;not null"`
	Major          string `json:"major,omitempty" gorm:"column:major"`
	GPA            string `json:"gpa,omitempty" gorm:"column:gpa"`
	GraduationYear string `json:"graduation_year,omitempty" gorm:"column:graduation_year"`
}

type WorkExperience struct {
	CompanyName      string     `json:"company_name" gorm:"column:company_name;not null"`
	Position         string     `json:"position" gorm:"column:position"`
	StartDate        *time.Time `json:"start_date,omitempty" gorm:"column:start_date;type:date"`
	EndDate          *time.Time `json:"end_date,omitempty" gorm:"column:end_date;type:date"`
	IsCurrent        bool       `json:"is_current" gorm:"column:is_current;default:false"`
	Salary           string     `json:"salary,omitempty" gorm:"column:salary"`
	Description      string     `json:"description,omitempty" gorm:"column:description"`
	ReasonForLeaving string     `json:"reason_for_leaving,omitempty" gorm:"column:reason_for_leaving"`
}

// File is the metadata stored for every uploaded attachment. FilePath is the
// public URL path, e.g. /uploads/documents/<name>.
type File struct {
	FileName string `json:"file_name" gorm:"column:file_name;not null"`
	FilePath string `json:"file_path" gorm:"column:file_path;not null"`
	FileSize int64  `json:"file_size" gorm:"column:file_size;not null"`
	MimeType string `json:"mime_type" gorm:"column:mime_type;not null"`
}
