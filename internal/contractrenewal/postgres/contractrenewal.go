package postgres

import (
	"context"

	"github.com/frahmantamala/hospital-careers/internal/contractrenewal"
	"github.com/frahmantamala/hospital-careers/internal/core/common/search"
	renewalDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/contractrenewal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContractRenewalRepository struct {
	db *gorm.DB
}

func NewContractRenewalRepository(db *gorm.DB) contractrenewal.RepositoryAPI {
	return &ContractRenewalRepository{db: db}
}

func (r *ContractRenewalRepository) GetByID(ctx context.Context, id int64) (*renewalDatamodel.ContractRenewal, error) {
	var c renewalDatamodel.ContractRenewal
	err := r.db.WithContext(ctx).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *ContractRenewalRepository) List(ctx context.Context, filter contractrenewal.ListFilter) ([]*renewalDatamodel.ContractRenewal, int64, error) {
	query := r.db.WithContext(ctx).Model(&renewalDatamodel.ContractRenewal{}).
		Scopes(search.Scope(filter.Search, "employee_id", "employee_name", "department", "position"))
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*renewalDatamodel.ContractRenewal
	err := query.Order("created_at DESC, id DESC").
		Limit(filter.Page.Limit).
		Offset(filter.Page.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (r *ContractRenewalRepository) Create(ctx context.Context, c *renewalDatamodel.ContractRenewal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error
}

func (r *ContractRenewalRepository) Update(ctx context.Context, c *renewalDatamodel.ContractRenewal) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *ContractRenewalRepository) UpdateStatus(ctx context.Context, id int64, review contractrenewal.Review) error {
	updates := map[string]interface{}{
		"status":      review.Status,
		"reviewed_by": review.ReviewedBy,
		"reviewed_at": review.ReviewedAt,
	}
	if review.Notes != "" {
		updates["notes"] = review.Notes
	}
	return r.db.WithContext(ctx).Model(&renewalDatamodel.ContractRenewal{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ContractRenewalRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contract_renewal_id = ?", id).Delete(&renewalDatamodel.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&renewalDatamodel.ContractRenewal{}, id).Error
	})
}

func (r *ContractRenewalRepository) CreateAttachment(ctx context.Context, a *renewalDatamodel.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ContractRenewalRepository) GetAttachment(ctx context.Context, renewalID, attachmentID int64) (*renewalDatamodel.Attachment, error) {
	var a renewalDatamodel.Attachment
	err := r.db.WithContext(ctx).
		Where("id = ? AND contract_renewal_id = ?", attachmentID, renewalID).
		First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *ContractRenewalRepository) DeleteAttachment(ctx context.Context, attachmentID int64) error {
	return r.db.WithContext(ctx).Delete(&renewalDatamodel.Attachment{}, attachmentID).Error
}
