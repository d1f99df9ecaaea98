package postgres

import (
	"context"

	"github.com/frahmantamala/hospital-careers/internal/application"
	"github.com/frahmantamala/hospital-careers/internal/core/common/search"
	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) application.RepositoryAPI {
	return &ApplicationRepository{db: db}
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*applicationDatamodel.ApplicationForm, error) {
	var a applicationDatamodel.ApplicationForm
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Educations", byID).
		Preload("WorkExperiences", byID).
		Preload("Documents", byID).
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) filtered(ctx context.Context, filter application.ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&applicationDatamodel.ApplicationForm{}).
		Scopes(search.Scope(filter.Search, "first_name", "last_name", "email", "phone", "id_card_number", "position"))
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	return query.Session(&gorm.Session{})
}

func (r *ApplicationRepository) List(ctx context.Context, filter application.ListFilter) ([]*applicationDatamodel.ApplicationForm, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*applicationDatamodel.ApplicationForm
	err := query.Preload("Department").
		Order("submitted_at DESC, id DESC").
		Limit(filter.Page.Limit).
		Offset(filter.Page.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (r *ApplicationRepository) ListAll(ctx context.Context, filter application.ListFilter) ([]*applicationDatamodel.ApplicationForm, error) {
	var rows []*applicationDatamodel.ApplicationForm
	err := r.filtered(ctx, filter).
		Preload("Department").
		Preload("Educations", byID).
		Order("submitted_at ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ApplicationRepository) Create(ctx context.Context, f *application.Form) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(f.Application).Error; err != nil {
			return err
		}
		return insertChildren(tx, f)
	})
}

func (r *ApplicationRepository) Replace(ctx context.Context, f *application.Form) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(f.Application).Error; err != nil {
			return err
		}
		id := f.Application.ID
		if err := tx.Where("application_id = ?", id).Delete(&applicationDatamodel.Education{}).Error; err != nil {
			return err
		}
		if err := tx.Where("application_id = ?", id).Delete(&applicationDatamodel.WorkExperience{}).Error; err != nil {
			return err
		}
		return insertChildren(tx, f)
	})
}

func insertChildren(tx *gorm.DB, f *application.Form) error {
	id := f.Application.ID
	for i := range f.Educations {
		f.Educations[i].ID = 0
		f.Educations[i].ApplicationID = id
	}
	for i := range f.WorkExperiences {
		f.WorkExperiences[i].ID = 0
		f.WorkExperiences[i].ApplicationID = id
	}
	if len(f.Educations) > 0 {
		if err := tx.Create(&f.Educations).Error; err != nil {
			return err
		}
	}
	if len(f.WorkExperiences) > 0 {
		if err := tx.Create(&f.WorkExperiences).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status, notes string) error {
	updates := map[string]interface{}{"status": status}
	if notes != "" {
		updates["review_notes"] = notes
	}
	return r.db.WithContext(ctx).Model(&applicationDatamodel.ApplicationForm{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&applicationDatamodel.Education{},
			&applicationDatamodel.WorkExperience{},
			&applicationDatamodel.Document{},
		} {
			if err := tx.Where("application_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&applicationDatamodel.ApplicationForm{}, id).Error
	})
}

func (r *ApplicationRepository) FindUserIDByEmail(ctx context.Context, email string) (*int64, error) {
	var u userDatamodel.User
	err := r.db.WithContext(ctx).Select("id").Where("LOWER(email) = ?", email).Order("id ASC").First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u.ID, nil
}

func (r *ApplicationRepository) CreateDocument(ctx context.Context, d *applicationDatamodel.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ApplicationRepository) GetDocument(ctx context.Context, applicationID, documentID int64) (*applicationDatamodel.Document, error) {
	var d applicationDatamodel.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND application_id = ?", documentID, applicationID).
		First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *ApplicationRepository) DeleteDocument(ctx context.Context, documentID int64) error {
	return r.db.WithContext(ctx).Delete(&applicationDatamodel.Document{}, documentID).Error
}
