package contractrenewal

import (
	"time"

	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/profile"
)

type ContractRenewal struct {
	ID                   int64        `json:"id" gorm:"primaryKey"`
	EmployeeID           string       `json:"employee_id" gorm:"column:employee_id;not null;index"`
	EmployeeName         string       `json:"employee_name" gorm:"column:employee_name;not null"`
	Prefix               string       `json:"prefix,omitempty" gorm:"column:prefix"`
	FirstName            string       `json:"first_name" gorm:"column:first_name;not null"`
	LastName             string       `json:"last_name" gorm:"column:last_name"`
	Department           string       `json:"department" gorm:"column:department"`
	Position             string       `json:"position" gorm:"column:position"`
	Phone                string       `json:"phone,omitempty" gorm:"column:phone"`
	Email                string       `json:"email,omitempty" gorm:"column:email"`
	CurrentContractStart *time.Time   `json:"current_contract_start,omitempty" gorm:"column:current_contract_start;type:date"`
	CurrentContractEnd   *time.Time   `json:"current_contract_end,omitempty" gorm:"column:current_contract_end;type:date"`
	NewContractStart     *time.Time   `json:"new_contract_start,omitempty" gorm:"column:new_contract_start;type:date"`
	NewContractEnd       *time.Time   `json:"new_contract_end,omitempty" gorm:"column:new_contract_end;type:date"`
	Notes                string       `json:"notes,omitempty" gorm:"column:notes"`
	Status               string       `json:"status" gorm:"column:status;not null;default:PENDING"`
	ReviewedBy           *int64       `json:"reviewed_by,omitempty" gorm:"column:reviewed_by"`
	ReviewedAt           *time.Time   `json:"reviewed_at,omitempty" gorm:"column:reviewed_at"`
	Attachments          []Attachment `json:"attachments" gorm:"foreignKey:ContractRenewalID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time    `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time    `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (ContractRenewal) TableName() string {
	return "contract_renewals"
}

type Attachment struct {
	ID                int64 `json:"id" gorm:"primaryKey"`
	ContractRenewalID int64 `json:"contract_renewal_id" gorm:"column:contract_renewal_id;not null;index"`
	profile.File
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Attachment) TableName() string {
	return "contract_renewal_attachments"
}
