package department

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	departmentDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/frahmantamala/hospital-careers/internal/thaidate"
	"gorm.io/datatypes"
)

// MaxEmployeeCount bounds the head count a department may declare.
const MaxEmployeeCount = 100000

// Apply validates dto and writes it over d. Children and timestamps are left alone.
func Apply(d *departmentDatamodel.Department, dto *DepartmentDTO) error {
	if appErr := validation.Struct(dto); appErr != nil {
		return appErr
	}
	v := validation.NewValidator()
	v.Field("name", strings.TrimSpace(dto.Name)).Required().MaxLength(255)
	v.Field("employee_count", int64(dto.EmployeeCount)).
		MinInt(0, internal.ErrCodeValidationFailed).
		MaxInt(MaxEmployeeCount, internal.ErrCodeValidationFailed)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	status, err := lifecycle.ParseDepartmentStatus(dto.Status)
	if err != nil {
		return err
	}
	preference, err := lifecycle.ParseGenderPreference(dto.GenderPreference)
	if err != nil {
		return err
	}
	start, end := dates.Ptr(dto.ApplicationStartDate), dates.Ptr(dto.ApplicationEndDate)
	if appErr := validation.ValidateDateRange("application_start_date", start, "application_end_date", end); appErr != nil {
		return appErr
	}

	positions := make([]string, 0, len(dto.Positions))
	for _, p := range dto.Positions {
		if p = strings.TrimSpace(p); p != "" {
			positions = append(positions, p)
		}
	}
	encoded, err := json.Marshal(positions)
	if err != nil {
		return err
	}

	d.Name = strings.TrimSpace(dto.Name)
	d.Code = normalizeCode(dto.Code)
	d.Description = dto.Description
	d.ManagerName = strings.TrimSpace(dto.ManagerName)
	d.ManagerEmail = strings.TrimSpace(dto.ManagerEmail)
	d.ManagerPhone = strings.TrimSpace(dto.ManagerPhone)
	d.Location = strings.TrimSpace(dto.Location)
	d.EmployeeCount = dto.EmployeeCount
	d.Status = string(status)
	d.Salary = strings.TrimSpace(dto.Salary)
	d.ApplicationStartDate = start
	d.ApplicationEndDate = end
	d.EducationRequirement = dto.EducationRequirement
	d.GenderPreference = string(preference)
	d.Positions = datatypes.JSON(encoded)
	d.MissionGroupID = dto.MissionGroupID
	return nil
}

func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	c := strings.ToUpper(strings.TrimSpace(*code))
	if c == "" {
		return nil
	}
	return &c
}

func Positions(d *departmentDatamodel.Department) []string {
	positions := []string{}
	if len(d.Positions) > 0 {
		_ = json.Unmarshal(d.Positions, &positions)
	}
	return positions
}

// applicationPeriod renders the window in Thai, for example
// "1 มีนาคม 2568 - 31 มีนาคม 2568".
func applicationPeriod(d *departmentDatamodel.Department) string {
	switch {
	case d.ApplicationStartDate == nil && d.ApplicationEndDate == nil:
		return ""
	case d.ApplicationEndDate == nil:
		return "ตั้งแต่ " + thaidate.Format(*d.ApplicationStartDate)
	case d.ApplicationStartDate == nil:
		return "ถึง " + thaidate.Format(*d.ApplicationEndDate)
	}
	return thaidate.Format(*d.ApplicationStartDate) + " - " + thaidate.Format(*d.ApplicationEndDate)
}

func ToResponse(d *departmentDatamodel.Department, now time.Time) DepartmentResponse {
	resp := DepartmentResponse{
		ID:                   d.ID,
		Name:                 d.Name,
		Code:                 d.Code,
		Description:          d.Description,
		ManagerName:          d.ManagerName,
		ManagerEmail:         d.ManagerEmail,
		ManagerPhone:         d.ManagerPhone,
		Location:             d.Location,
		EmployeeCount:        d.EmployeeCount,
		Status:               d.Status,
		Salary:               d.Salary,
		ApplicationStartDate: dates.From(d.ApplicationStartDate),
		ApplicationEndDate:   dates.From(d.ApplicationEndDate),
		ApplicationPeriod:    applicationPeriod(d),
		IsOpen:               d.AcceptsApplicationsOn(Today(now)),
		EducationRequirement: d.EducationRequirement,
		GenderPreference:     d.GenderPreference,
		Positions:            Positions(d),
		MissionGroupID:       d.MissionGroupID,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
	if d.MissionGroup != nil {
		resp.MissionGroup = &MissionGroupSummary{ID: d.MissionGroup.ID, Name: d.MissionGroup.Name, Code: d.MissionGroup.Code}
	}
	for _, a := range d.Attachments {
		resp.Attachments = append(resp.Attachments, AttachmentResponse{
			ID:        a.ID,
			FileName:  a.FileName,
			FilePath:  a.FilePath,
			FileSize:  a.FileSize,
			MimeType:  a.MimeType,
			CreatedAt: a.CreatedAt,
		})
	}
	return resp
}

// Today is the calendar day in Bangkok, returned as a UTC midnight so it
// compares directly with stored dates.
func Today(now time.Time) time.Time {
	y, m, d := now.In(thaidate.Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
