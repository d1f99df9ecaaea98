package postgres

import (
	"context"

	"github.com/frahmantamala/hospital-careers/internal/core/common/search"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Educations", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("WorkExperiences", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := withChildren(r.db.WithContext(ctx)).Where(query, args...).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *UserRepository) GetByLineID(ctx context.Context, lineID string) (*userDatamodel.User, error) {
	return r.first(ctx, "line_id = ?", lineID)
}

func (r *UserRepository) Create(ctx context.Context, p *user.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p.User).Error; err != nil {
			return err
		}
		return insertChildren(tx, p)
	})
}

// ReplaceProfile saves the user columns and swaps every child row in one
// transaction.
func (r *UserRepository) ReplaceProfile(ctx context.Context, p *user.Profile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(p.User).Error; err != nil {
			return err
		}
		if err := deleteChildren(tx, p.User.ID); err != nil {
			return err
		}
		return insertChildren(tx, p)
	})
}

func insertChildren(tx *gorm.DB, p *user.Profile) error {
	for i := range p.Educations {
		p.Educations[i].ID = 0
		p.Educations[i].UserID = p.User.ID
	}
	for i := range p.WorkExperiences {
		p.WorkExperiences[i].ID = 0
		p.WorkExperiences[i].UserID = p.User.ID
	}
	if len(p.Educations) > 0 {
		if err := tx.Create(&p.Educations).Error; err != nil {
			return err
		}
	}
	if len(p.WorkExperiences) > 0 {
		if err := tx.Create(&p.WorkExperiences).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteChildren(tx *gorm.DB, userID int64) error {
	if err := tx.Where("user_id = ?", userID).Delete(&userDatamodel.Education{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&userDatamodel.WorkExperience{}).Error
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]*userDatamodel.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&userDatamodel.User{}).
		Scopes(search.Scope(filter.Search, "first_name", "last_name", "email", "phone"))
	if filter.Role != nil {
		query = query.Where("role = ?", string(*filter.Role))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*userDatamodel.User
	err := query.Order("created_at DESC, id DESC").
		Limit(filter.Page.Limit).
		Offset(filter.Page.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", id).Update("status", status).Error
}

func (r *UserRepository) UpdateProfileImage(ctx context.Context, id int64, path string) error {
	return r.db.WithContext(ctx).Model(&userDatamodel.User{}).Where("id = ?", id).Update("profile_image", path).Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		return tx.Delete(&userDatamodel.User{}, id).Error
	})
}
