package resume

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	resumeDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/resume"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*resumeDatamodel.ResumeDeposit, error)
	List(ctx context.Context, filter ListFilter) ([]*resumeDatamodel.ResumeDeposit, int64, error)
	Create(ctx context.Context, d *Deposit) error
	Replace(ctx context.Context, d *Deposit) error
	UpdateStatus(ctx context.Context, id int64, status, notes string) error
	Delete(ctx context.Context, id int64) error
	FindUserIDByEmail(ctx context.Context, email string) (*int64, error)
	CreateDocument(ctx context.Context, d *resumeDatamodel.Document) error
	GetDocument(ctx context.Context, resumeID, documentID int64) (*resumeDatamodel.Document, error)
	DeleteDocument(ctx context.Context, documentID int64) error
}

type FileStore interface {
	Save(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy attachment.Policy) (*attachment.StoredFile, error)
	SaveWithRecord(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy attachment.Policy, insert func(*attachment.StoredFile) error) (*attachment.StoredFile, error)
	Remove(urlPath string) error
}

type Service struct {
	repo   RepositoryAPI
	files  FileStore
	events events.Publisher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, files FileStore, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		events: publisher,
		logger: logger,
	}
}

// Create stores the deposit with its child rows and the uploaded documents.
// Every file is checked and written before the single insert transaction; if
// any file is refused or the insert fails, nothing is kept.
func (s *Service) Create(ctx context.Context, identity *internal.Identity, dto *ResumeDTO, uploads []DocumentUpload) (*resumeDatamodel.ResumeDeposit, error) {
	r := &resumeDatamodel.ResumeDeposit{Status: string(lifecycle.ResumePending)}
	d, err := Build(r, dto)
	if err != nil {
		return nil, err
	}
	types, err := documentTypes(uploads)
	if err != nil {
		return nil, err
	}

	userID, err := profileform.LinkUser(ctx, s.repo, identity, r.Email)
	if err != nil {
		s.logger.Error("failed to look up user by email", "error", err)
		return nil, err
	}
	r.UserID = userID

	stored, err := s.storeDocuments(ctx, uploads)
	if err != nil {
		return nil, err
	}
	for i, f := range stored {
		d.Documents = append(d.Documents, resumeDatamodel.Document{DocumentType: string(types[i]), File: f.ToFile()})
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("failed to create resume", "error", err)
		s.removeFiles(stored)
		return nil, err
	}
	s.logger.Info("resume deposited", "resume_id", r.ID, "documents", len(stored))
	return s.Get(ctx, r.ID)
}

func documentTypes(uploads []DocumentUpload) ([]lifecycle.DocumentType, error) {
	if len(uploads) > MaxCreateDocuments {
		return nil, internal.NewValidationFieldError("documents",
			fmt.Sprintf("at most %d documents may be sent with a deposit", MaxCreateDocuments), internal.ErrCodeValidationFailed)
	}
	types := make([]lifecycle.DocumentType, 0, len(uploads))
	for _, u := range uploads {
		if u.File == nil {
			return nil, internal.ErrFileMissing
		}
		t, err := lifecycle.ParseDocumentType(u.DocumentType)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// storeDocuments writes every upload or, on the first refusal, none.
func (s *Service) storeDocuments(ctx context.Context, uploads []DocumentUpload) ([]*attachment.StoredFile, error) {
	stored := make([]*attachment.StoredFile, 0, len(uploads))
	for _, u := range uploads {
		f, err := s.files.Save(ctx, attachment.DirResumes, "resume", u.File, attachment.DocumentPolicy)
		if err != nil {
			s.logger.Warn("refused resume document", "error", err, "file_name", u.File.Filename)
			s.removeFiles(stored)
			return nil, err
		}
		stored = append(stored, f)
	}
	return stored, nil
}

func (s *Service) removeFiles(stored []*attachment.StoredFile) {
	for _, f := range stored {
		if err := s.files.Remove(f.Path); err != nil {
			s.logger.Warn("failed to remove resume document", "error", err, "path", f.Path)
		}
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*resumeDatamodel.ResumeDeposit, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get resume", "error", err, "resume_id", id)
		return nil, err
	}
	if r == nil {
		return nil, internal.ErrResumeNotFound
	}
	return r, nil
}

// GetFor returns the resume if identity is staff or the depositor.
func (s *Service) GetFor(ctx context.Context, identity *internal.Identity, id int64) (*resumeDatamodel.ResumeDeposit, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.IsStaff() {
		return r, nil
	}
	if identity == nil || identity.UserID <= 0 || r.UserID == nil || *r.UserID != identity.UserID {
		return nil, internal.ErrForbidden
	}
	return r, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*pagination.Page[*resumeDatamodel.ResumeDeposit], error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list resumes", "error", err)
		return nil, err
	}
	page := pagination.NewPage(rows, total, filter.Page)
	return &page, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto *ResumeDTO) (*resumeDatamodel.ResumeDeposit, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := Build(r, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, d); err != nil {
		s.logger.Error("failed to update resume", "error", err, "resume_id", id)
		return nil, err
	}
	s.logger.Info("resume updated", "resume_id", id)
	return s.Get(ctx, id)
}

// UpdateStatus only moves a resume forward through the review pipeline.
// Asking for the current status is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, id, actorID int64, dto *UpdateStatusDTO) (*resumeDatamodel.ResumeDeposit, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	to, err := lifecycle.ParseResumeStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := lifecycle.ResumeStatus(r.Status)
	if from == to {
		return r, nil
	}
	if !from.CanTransitionTo(to) {
		return nil, lifecycle.TransitionError(from, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, string(to), strings.TrimSpace(dto.Notes)); err != nil {
		s.logger.Error("failed to update resume status", "error", err, "resume_id", id)
		return nil, err
	}
	s.logger.Info("resume status changed", "resume_id", id, "from", from, "to", to)

	event := events.NewStatusChangedEvent(events.EntityResume, id, string(from), string(to), actorID)
	if err := s.events.PublishSync(ctx, event); err != nil {
		s.logger.Warn("status event handler failed", "error", err, "resume_id", id)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete resume", "error", err, "resume_id", id)
		return err
	}
	for _, d := range r.Documents {
		if err := s.files.Remove(d.FilePath); err != nil {
			s.logger.Warn("failed to remove resume document", "error", err, "path", d.FilePath)
		}
	}
	s.logger.Info("resume deleted", "resume_id", id)
	return nil
}

func (s *Service) UploadDocument(ctx context.Context, identity *internal.Identity, id int64, documentType string, fh *multipart.FileHeader) (*resumeDatamodel.Document, error) {
	docType, err := lifecycle.ParseDocumentType(documentType)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetFor(ctx, identity, id); err != nil {
		return nil, err
	}

	var row *resumeDatamodel.Document
	_, err = s.files.SaveWithRecord(ctx, attachment.DirResumes, "resume_"+strconv.FormatInt(id, 10), fh, attachment.DocumentPolicy,
		func(stored *attachment.StoredFile) error {
			row = &resumeDatamodel.Document{ResumeID: id, DocumentType: string(docType), File: stored.ToFile()}
			return s.repo.CreateDocument(ctx, row)
		})
	if err != nil {
		s.logger.Error("failed to upload resume document", "error", err, "resume_id", id)
		return nil, err
	}
	return row, nil
}

func (s *Service) DeleteDocument(ctx context.Context, id, documentID int64) error {
	d, err := s.repo.GetDocument(ctx, id, documentID)
	if err != nil {
		return err
	}
	if d == nil {
		return internal.ErrAttachmentNotFound
	}
	if err := s.repo.DeleteDocument(ctx, documentID); err != nil {
		s.logger.Error("failed to delete resume document", "error", err, "resume_id", id)
		return err
	}
	if err := s.files.Remove(d.FilePath); err != nil {
		s.logger.Warn("failed to remove resume document", "error", err, "path", d.FilePath)
	}
	return nil
}

func ParseListFilter(status, search string, page pagination.Params) (ListFilter, error) {
	st, err := lifecycle.ParseStatusFilter(status, lifecycle.ResumeStatuses)
	if err != nil {
		return ListFilter{}, err
	}
	return ListFilter{Status: st, Search: search, Page: page}, nil
}
