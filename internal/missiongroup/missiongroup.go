package missiongroup

import (
	"strings"

	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/missiongroup"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

// DepartmentRef is the slice of a department the mapping batch works with.
type DepartmentRef struct {
	ID             int64
	Name           string
	MissionGroupID *int64
}

type Assignment struct {
	DepartmentID     int64  `json:"department_id"`
	DepartmentName   string `json:"department_name"`
	MissionGroupID   int64  `json:"mission_group_id"`
	MissionGroupCode string `json:"mission_group_code"`
	Changed          bool   `json:"changed"`
}

type Unmatched struct {
	DepartmentID   int64  `json:"department_id"`
	DepartmentName string `json:"department_name"`
}

type MappingReport struct {
	Matched   []Assignment `json:"matched"`
	Unmatched []Unmatched  `json:"unmatched"`
	Updated   int          `json:"updated"`
	// MissingGroups lists mapping codes with no mission group row.
	MissingGroups []string `json:"missing_groups,omitempty"`
}

func NewMissionGroup(dto *CreateMissionGroupDTO) (*missiongroup.MissionGroup, error) {
	status, err := lifecycle.ParseMissionGroupStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	return &missiongroup.MissionGroup{
		Name:         strings.TrimSpace(dto.Name),
		Code:         normalizeCode(dto.Code),
		Description:  strings.TrimSpace(dto.Description),
		DisplayOrder: dto.DisplayOrder,
		Status:       string(status),
	}, nil
}

// ApplyUpdate copies the fields present in dto onto mg.
func ApplyUpdate(mg *missiongroup.MissionGroup, dto *UpdateMissionGroupDTO) error {
	if dto.Name != nil {
		mg.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Code != nil {
		mg.Code = normalizeCode(*dto.Code)
	}
	if dto.Description != nil {
		mg.Description = strings.TrimSpace(*dto.Description)
	}
	if dto.DisplayOrder != nil {
		mg.DisplayOrder = *dto.DisplayOrder
	}
	if dto.Status != nil {
		status, err := lifecycle.ParseMissionGroupStatus(*dto.Status)
		if err != nil {
			return err
		}
		mg.Status = string(status)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func ToResponse(mg *missiongroup.MissionGroup, departmentCount int64) MissionGroupResponse {
	return MissionGroupResponse{
		ID:              mg.ID,
		Name:            mg.Name,
		Code:            mg.Code,
		Description:     mg.Description,
		DisplayOrder:    mg.DisplayOrder,
		Status:          mg.Status,
		DepartmentCount: departmentCount,
		CreatedAt:       mg.CreatedAt,
		UpdatedAt:       mg.UpdatedAt,
	}
}
