package missiongroup

import "time"

type CreateMissionGroupDTO struct {
	Name         string `json:"name" validate:"required,max=255"`
	Code         string `json:"code" validate:"required,max=50"`
	Description  string `json:"description" validate:"max=2000"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	Status       string `json:"status"`
}

type UpdateMissionGroupDTO struct {
	Name         *string `json:"name" validate:"omitnil,min=1,max=255"`
	Code         *string `json:"code" validate:"omitnil,min=1,max=50"`
	Description  *string `json:"description" validate:"omitnil,max=2000"`
	DisplayOrder *int    `json:"display_order" validate:"omitnil,gte=0"`
	Status       *string `json:"status"`
}

// AssignDepartmentDTO links a department to a group; a null id clears the link.
type AssignDepartmentDTO struct {
	MissionGroupID *int64 `json:"mission_group_id"`
}

type MissionGroupResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Description     string    `json:"description,omitempty"`
	DisplayOrder    int       `json:"display_order"`
	Status          string    `json:"status"`
	DepartmentCount int64     `json:"department_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type MissionGroupsResponse struct {
	MissionGroups []MissionGroupResponse `json:"mission_groups"`
}
