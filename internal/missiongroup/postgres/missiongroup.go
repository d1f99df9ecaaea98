package postgres

import (
	"context"

	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	missiongroupDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/missiongroup"
	"github.com/frahmantamala/hospital-careers/internal/missiongroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MissionGroupRepository struct {
	db *gorm.DB
}

func NewMissionGroupRepository(db *gorm.DB) missiongroup.RepositoryAPI {
	return &MissionGroupRepository{db: db}
}

func (r *MissionGroupRepository) List(ctx context.Context) ([]*missiongroupDatamodel.MissionGroup, error) {
	var groups []*missiongroupDatamodel.MissionGroup
	err := r.db.WithContext(ctx).Order("display_order ASC, id ASC").Find(&groups).Error
	return groups, err
}

func (r *MissionGroupRepository) GetByID(ctx context.Context, id int64) (*missiongroupDatamodel.MissionGroup, error) {
	var mg missiongroupDatamodel.MissionGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&mg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &mg, nil
}

func (r *MissionGroupRepository) GetByCode(ctx context.Context, code string) (*missiongroupDatamodel.MissionGroup, error) {
	var mg missiongroupDatamodel.MissionGroup
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&mg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &mg, nil
}

func (r *MissionGroupRepository) Create(ctx context.Context, mg *missiongroupDatamodel.MissionGroup) error {
	return r.db.WithContext(ctx).Create(mg).Error
}

func (r *MissionGroupRepository) Update(ctx context.Context, mg *missiongroupDatamodel.MissionGroup) error {
	return r.db.WithContext(ctx).Save(mg).Error
}

// Delete unlinks the group's departments before removing it so the result
// does not depend on the database enforcing ON DELETE SET NULL.
func (r *MissionGroupRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&department.Department{}).
			Where("mission_group_id = ?", id).
			Update("mission_group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&missiongroupDatamodel.MissionGroup{}, id).Error
	})
}

func (r *MissionGroupRepository) Upsert(ctx context.Context, groups []*missiongroupDatamodel.MissionGroup) error {
	if len(groups) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "display_order", "updated_at"}),
	}).Create(&groups).Error
}

func (r *MissionGroupRepository) DepartmentCounts(ctx context.Context) (map[int64]int64, error) {
	var rows []struct {
		MissionGroupID int64
		Total          int64
	}
	err := r.db.WithContext(ctx).Model(&department.Department{}).
		Select("mission_group_id, COUNT(*) AS total").
		Where("mission_group_id IS NOT NULL").
		Group("mission_group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(rows))
	for _, row := range rows {
		counts[row.MissionGroupID] = row.Total
	}
	return counts, nil
}

func (r *MissionGroupRepository) ListDepartments(ctx context.Context) ([]missiongroup.DepartmentRef, error) {
	var rows []department.Department
	err := r.db.WithContext(ctx).
		Select("id", "name", "mission_group_id").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	refs := make([]missiongroup.DepartmentRef, 0, len(rows))
	for _, d := range rows {
		refs = append(refs, missiongroup.DepartmentRef{ID: d.ID, Name: d.Name, MissionGroupID: d.MissionGroupID})
	}
	return refs, nil
}

func (r *MissionGroupRepository) AssignDepartment(ctx context.Context, departmentID int64, groupID *int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&department.Department{}).
		Where("id = ?", departmentID).
		Update("mission_group_id", groupID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MissionGroupRepository) AssignDepartments(ctx context.Context, byDepartment map[int64]int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for departmentID, groupID := range byDepartment {
			if err := tx.Model(&department.Department{}).
				Where("id = ?", departmentID).
				Update("mission_group_id", groupID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
