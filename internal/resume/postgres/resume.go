package postgres

import (
	"context"

	"github.com/frahmantamala/hospital-careers/internal/core/common/search"
	resumeDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/resume"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/resume"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) resume.RepositoryAPI {
	return &ResumeRepository{db: db}
}

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *ResumeRepository) GetByID(ctx context.Context, id int64) (*resumeDatamodel.ResumeDeposit, error) {
	var d resumeDatamodel.ResumeDeposit
	err := r.db.WithContext(ctx).
		Preload("Educations", byID).
		Preload("WorkExperiences", byID).
		Preload("GovernmentServices", byID).
		Preload("Documents", byID).
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

func (r *ResumeRepository) List(ctx context.Context, filter resume.ListFilter) ([]*resumeDatamodel.ResumeDeposit, int64, error) {
	query := r.db.WithContext(ctx).Model(&resumeDatamodel.ResumeDeposit{}).
		Scopes(search.Scope(filter.Search, "first_name", "last_name", "email", "phone", "desired_position", "desired_department"))
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*resumeDatamodel.ResumeDeposit
	err := query.Order("created_at DESC, id DESC").
		Limit(filter.Page.Limit).
		Offset(filter.Page.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (r *ResumeRepository) Create(ctx context.Context, d *resume.Deposit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(d.Resume).Error; err != nil {
			return err
		}
		return insertChildren(tx, d)
	})
}

func (r *ResumeRepository) Replace(ctx context.Context, d *resume.Deposit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(d.Resume).Error; err != nil {
			return err
		}
		if err := deleteChildren(tx, d.Resume.ID, false); err != nil {
			return err
		}
		return insertChildren(tx, d)
	})
}

// deleteChildren removes the replaceable child rows; documents only go
// when the whole deposit is deleted.
func deleteChildren(tx *gorm.DB, id int64, withDocuments bool) error {
	children := []interface{}{
		&resumeDatamodel.Education{},
		&resumeDatamodel.WorkExperience{},
		&resumeDatamodel.GovernmentService{},
	}
	if withDocuments {
		children = append(children, &resumeDatamodel.Document{})
	}
	for _, child := range children {
		if err := tx.Where("resume_id = ?", id).Delete(child).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertChildren(tx *gorm.DB, d *resume.Deposit) error {
	id := d.Resume.ID
	for i := range d.Educations {
		d.Educations[i].ID = 0
		d.Educations[i].ResumeID = id
	}
	for i := range d.WorkExperiences {
		d.WorkExperiences[i].ID = 0
		d.WorkExperiences[i].ResumeID = id
	}
	for i := range d.GovernmentServices {
		d.GovernmentServices[i].ID = 0
		d.GovernmentServices[i].ResumeID = id
	}
	for i := range d.Documents {
		d.Documents[i].ID = 0
		d.Documents[i].ResumeID = id
	}
	if len(d.Educations) > 0 {
		if err := tx.Create(&d.Educations).Error; err != nil {
			return err
		}
	}
	if len(d.WorkExperiences) > 0 {
		if err := tx.Create(&d.WorkExperiences).Error; err != nil {
			return err
		}
	}
	if len(d.GovernmentServices) > 0 {
		if err := tx.Create(&d.GovernmentServices).Error; err != nil {
			return err
		}
	}
	if len(d.Documents) > 0 {
		if err := tx.Create(&d.Documents).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ResumeRepository) UpdateStatus(ctx context.Context, id int64, status, notes string) error {
	updates := map[string]interface{}{"status": status}
	if notes != "" {
		updates["notes"] = notes
	}
	return r.db.WithContext(ctx).Model(&resumeDatamodel.ResumeDeposit{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ResumeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id, true); err != nil {
			return err
		}
		return tx.Delete(&resumeDatamodel.ResumeDeposit{}, id).Error
	})
}

func (r *ResumeRepository) FindUserIDByEmail(ctx context.Context, email string) (*int64, error) {
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

func (r *ResumeRepository) CreateDocument(ctx context.Context, d *resumeDatamodel.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ResumeRepository) GetDocument(ctx context.Context, resumeID, documentID int64) (*resumeDatamodel.Document, error) {
	var d resumeDatamodel.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND resume_id = ?", documentID, resumeID).
		First(&d).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *ResumeRepository) DeleteDocument(ctx context.Context, documentID int64) error {
	return r.db.WithContext(ctx).Delete(&resumeDatamodel.Document{}, documentID).Error
}
