package postgres

import (
	"context"

	"github.com/frahmantamala/hospital-careers/internal/core/common/search"
	departmentDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/missiongroup"
	"github.com/frahmantamala/hospital-careers/internal/department"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) List(ctx context.Context, filter department.ListFilter) ([]*departmentDatamodel.Department, int64, error) {
	query := r.db.WithContext(ctx).Model(&departmentDatamodel.Department{}).
		Scopes(search.Scope(filter.Search, "name", "code"))
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.MissionGroupID != nil {
		query = query.Where("mission_group_id = ?", *filter.MissionGroupID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*departmentDatamodel.Department
	err := query.Preload("MissionGroup").
		Order("name ASC, id ASC").
		Limit(filter.Page.Limit).
		Offset(filter.Page.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (r *DepartmentRepository) ListActive(ctx context.Context) ([]*departmentDatamodel.Department, error) {
	var rows []*departmentDatamodel.Department
	err := r.db.WithContext(ctx).
		Preload("MissionGroup").
		Preload("Attachments").
		Where("status = ?", "ACTIVE").
		Order("application_end_date ASC, name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error) {
	var d departmentDatamodel.Department
	err := r.db.WithContext(ctx).
		Preload("MissionGroup").
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*departmentDatamodel.Department, error) {
	var d departmentDatamodel.Department
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) MissionGroupExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&missiongroup.MissionGroup{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *DepartmentRepository) Create(ctx context.Context, d *departmentDatamodel.Department) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error
}

func (r *DepartmentRepository) Update(ctx context.Context, d *departmentDatamodel.Department) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error
}

func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("department_id = ?", id).Delete(&departmentDatamodel.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&departmentDatamodel.Department{}, id).Error
	})
}

func (r *DepartmentRepository) CreateAttachment(ctx context.Context, a *departmentDatamodel.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *DepartmentRepository) GetAttachment(ctx context.Context, departmentID, attachmentID int64) (*departmentDatamodel.Attachment, error) {
	var a departmentDatamodel.Attachment
	err := r.db.WithContext(ctx).
		Where("id = ? AND department_id = ?", attachmentID, departmentID).
		First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *DepartmentRepository) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	return r.db.WithContext(ctx).Delete(&departmentDatamodel.Attachment{}, attachmentID).Error
}
