package department

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/dates"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	departmentDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

type RepositoryAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*departmentDatamodel.Department, int64, error)
	ListActive(ctx context.Context) ([]*departmentDatamodel.Department, error)
	GetByID(ctx context.Context, id int64) (*departmentDatamodel.Department, error)
	GetByCode(ctx context.Context, code string) (*departmentDatamodel.Department, error)
	MissionGroupExists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, d *departmentDatamodel.Department) error
	Update(ctx context.Context, d *departmentDatamodel.Department) error
	Delete(ctx context.Context, id int64) error
	CreateAttachment(ctx context.Context, a *departmentDatamodel.Attachment) error
	GetAttachment(ctx context.Context, departmentID, attachmentID int64) (*departmentDatamodel.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID int64) error
}

// FileStore is the part of attachment.Store the service needs.
type FileStore interface {
	SaveWithRecord(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy attachment.Policy, insert func(*attachment.StoredFile) error) (*attachment.StoredFile, error)
	Remove(urlPath string) error
}

type Service struct {
	repo   RepositoryAPI
	files  FileStore
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, files FileStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used to decide which departments are open.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*pagination.Page[DepartmentResponse], error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, err
	}
	now := s.now()
	items := make([]DepartmentResponse, 0, len(rows))
	for _, d := range rows {
		items = append(items, ToResponse(d, now))
	}
	page := pagination.NewPage(items, total, filter.Page)
	return &page, nil
}

// ListOpenings returns ACTIVE departments whose application window contains
// today's date in Bangkok.
func (s *Service) ListOpenings(ctx context.Context) (*OpeningsResponse, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error("failed to list active departments", "error", err)
		return nil, err
	}

	now := s.now()
	today := Today(now)
	openings := make([]DepartmentResponse, 0, len(rows))
	for _, d := range rows {
		if d.AcceptsApplicationsOn(today) {
			openings = append(openings, ToResponse(d, now))
		}
	}
	return &OpeningsResponse{Openings: openings, AsOf: dates.Date{Time: today}}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*DepartmentResponse, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(d, s.now())
	return &resp, nil
}

// AcceptsApplications tells the application flow whether id is open today.
func (s *Service) AcceptsApplications(ctx context.Context, id int64) (bool, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return false, err
	}
	return d.AcceptsApplicationsOn(Today(s.now())), nil
}

func (s *Service) Create(ctx context.Context, dto *DepartmentDTO) (*DepartmentResponse, error) {
	d := &departmentDatamodel.Department{}
	if err := Apply(d, dto); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, d); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("failed to create department", "error", err, "name", d.Name)
		return nil, err
	}
	s.logger.Info("department created", "department_id", d.ID, "name", d.Name)
	return s.Get(ctx, d.ID)
}

func (s *Service) Update(ctx context.Context, id int64, dto *DepartmentDTO) (*DepartmentResponse, error) {
	d, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Apply(d, dto); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, d); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("failed to update department", "error", err, "department_id", id)
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the department and its attachments. Files are removed after
// the rows are gone; a file that cannot be removed is only logged.
func (s *Service) Delete(ctx context.Context, id int64) error {
	d, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete department", "error", err, "department_id", id)
		return err
	}
	for _, a := range d.Attachments {
		if err := s.files.Remove(a.FilePath); err != nil {
			s.logger.Warn("failed to remove department attachment file", "error", err, "path", a.FilePath)
		}
	}
	s.logger.Info("department deleted", "department_id", id, "attachments", len(d.Attachments))
	return nil
}

func (s *Service) UploadAttachment(ctx context.Context, id int64, fh *multipart.FileHeader) (*AttachmentResponse, error) {
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	var row *departmentDatamodel.Attachment
	_, err := s.files.SaveWithRecord(ctx, attachment.DirDepartments, "department_"+strconv.FormatInt(id, 10), fh, attachment.DocumentPolicy,
		func(stored *attachment.StoredFile) error {
			row = &departmentDatamodel.Attachment{DepartmentID: id, File: stored.ToFile()}
			return s.repo.CreateAttachment(ctx, row)
		})
	if err != nil {
		s.logger.Error("failed to upload department attachment", "error", err, "department_id", id)
		return nil, err
	}

	return &AttachmentResponse{
		ID:        row.ID,
		FileName:  row.FileName,
		FilePath:  row.FilePath,
		FileSize:  row.FileSize,
		MimeType:  row.MimeType,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (s *Service) DeleteAttachment(ctx context.Context, id, attachmentID int64) error {
	a, err := s.repo.GetAttachment(ctx, id, attachmentID)
	if err != nil {
		return err
	}
	if a == nil {
		return internal.ErrAttachmentNotFound
	}
	if err := s.repo.DeleteAttachment(ctx, attachmentID); err != nil {
		s.logger.Error("failed to delete department attachment", "error", err, "attachment_id", attachmentID)
		return err
	}
	if err := s.files.Remove(a.FilePath); err != nil {
		s.logger.Warn("failed to remove department attachment file", "error", err, "path", a.FilePath)
	}
	return nil
}

func (s *Service) find(ctx context.Context, id int64) (*departmentDatamodel.Department, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get department", "error", err, "department_id", id)
		return nil, err
	}
	if d == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	return d, nil
}

func (s *Service) checkReferences(ctx context.Context, d *departmentDatamodel.Department) error {
	if d.MissionGroupID != nil {
		ok, err := s.repo.MissionGroupExists(ctx, *d.MissionGroupID)
		if err != nil {
			return err
		}
		if !ok {
			return internal.ErrMissionGroupNotFound
		}
	}
	if d.Code != nil {
		existing, err := s.repo.GetByCode(ctx, *d.Code)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != d.ID {
			return internal.NewConflictError("department code already exists", internal.ErrCodeDuplicate)
		}
	}
	return nil
}

// ParseListFilter reads status, mission_group_id and search from query values.
func ParseListFilter(status, search string, missionGroupID *int64, page pagination.Params) (ListFilter, error) {
	st, err := lifecycle.ParseStatusFilter(status, lifecycle.DepartmentStatuses)
	if err != nil {
		return ListFilter{}, err
	}
	return ListFilter{Status: st, MissionGroupID: missionGroupID, Search: search, Page: page}, nil
}
