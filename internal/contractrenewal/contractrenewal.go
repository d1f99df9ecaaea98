package contractrenewal

import (
	"strings"

	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	renewalDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/contractrenewal"
	"github.com/google/uuid"
)

// Apply validates dto and copies it onto c. The employee name is rebuilt
// from the name parts on every write; an existing employee id is kept when
// dto leaves it blank.
func Apply(c *renewalDatamodel.ContractRenewal, dto *RenewalDTO) error {
	if appErr := validation.Struct(dto); appErr != nil {
		return appErr
	}
	currentStart, currentEnd := dates.Ptr(dto.CurrentContractStart), dates.Ptr(dto.CurrentContractEnd)
	newStart, newEnd := dates.Ptr(dto.NewContractStart), dates.Ptr(dto.NewContractEnd)
	if appErr := validation.ValidateDateRange("current_contract_start", currentStart, "current_contract_end", currentEnd); appErr != nil {
		return appErr
	}
	if appErr := validation.ValidateDateRange("new_contract_start", newStart, "new_contract_end", newEnd); appErr != nil {
		return appErr
	}

	if id := strings.TrimSpace(dto.EmployeeID); id != "" {
		c.EmployeeID = strings.ToUpper(id)
	} else if c.EmployeeID == "" {
		c.EmployeeID = NewEmployeeID()
	}
	c.Prefix = strings.TrimSpace(dto.Prefix)
	c.FirstName = strings.TrimSpace(dto.FirstName)
	c.LastName = strings.TrimSpace(dto.LastName)
	c.EmployeeName = EmployeeName(c.Prefix, c.FirstName, c.LastName)
	c.Department = strings.TrimSpace(dto.Department)
	c.Position = strings.TrimSpace(dto.Position)
	c.Phone = strings.TrimSpace(dto.Phone)
	c.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	c.CurrentContractStart = currentStart
	c.CurrentContractEnd = currentEnd
	c.NewContractStart = newStart
	c.NewContractEnd = newEnd
	c.Notes = dto.Notes
	return nil
}

// EmployeeName joins the Thai prefix directly onto the first name.
func EmployeeName(prefix, first, last string) string {
	name := prefix + first
	if last != "" {
		name += " " + last
	}
	return name
}

// NewEmployeeID returns a placeholder id for renewals filed without one.
func NewEmployeeID() string {
	return "EMP-" + strings.ToUpper(uuid.NewString()[:8])
}
