package missiongroup

import "time"

type MissionGroup struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Code         string    `json:"code" gorm:"column:code;uniqueIndex;not null"`
	Description  string    `json:"description,omitempty" gorm:"column:description"`
	DisplayOrder int       `json:"display_order" gorm:"column:display_order;default:0"`
	Status       string    `json:"status" gorm:"column:status;not null;default:ACTIVE"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (MissionGroup) TableName() string {
	return "mission_groups"
}
