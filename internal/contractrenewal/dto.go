package contractrenewal

import (
	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

type RenewalDTO struct {
	EmployeeID           string      `json:"employee_id" validate:"max=50"`
	Prefix               string      `json:"prefix" validate:"max=50"`
	FirstName            string      `json:"first_name" validate:"required,max=255"`
	LastName             string      `json:"last_name" validate:"max=255"`
	Department           string      `json:"department" validate:"max=255"`
	Position             string      `json:"position" validate:"max=255"`
	Phone                string      `json:"phone" validate:"max=50"`
	Email                string      `json:"email" validate:"omitempty,email,max=255"`
	CurrentContractStart *dates.Date `json:"current_contract_start"`
	CurrentContractEnd   *dates.Date `json:"current_contract_end"`
	NewContractStart     *dates.Date `json:"new_contract_start"`
	NewContractEnd       *dates.Date `json:"new_contract_end"`
	Notes                string      `json:"notes" validate:"max=2000"`
}

type UpdateStatusDTO struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

type ListFilter struct {
	Status     *lifecycle.RenewalStatus
	Department string
	Search     string
	Page       pagination.Params
}
