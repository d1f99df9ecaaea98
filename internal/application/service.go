package application

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
	"github.com/frahmantamala/hospital-careers/internal/core/profileform"
	"github.com/frahmantamala/hospital-careers/internal/pdfform"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*applicationDatamodel.ApplicationForm, error)
	List(ctx context.Context, filter ListFilter) ([]*applicationDatamodel.ApplicationForm, int64, error)
	ListAll(ctx context.Context, filter ListFilter) ([]*applicationDatamodel.ApplicationForm, error)
	Create(ctx context.Context, f *Form) error
	Replace(ctx context.Context, f *Form) error
	UpdateStatus(ctx context.Context, id int64, status, notes string) error
	Delete(ctx context.Context, id int64) error
	FindUserIDByEmail(ctx context.Context, email string) (*int64, error)
	CreateDocument(ctx context.Context, d *applicationDatamodel.Document) error
	GetDocument(ctx context.Context, applicationID, documentID int64) (*applicationDatamodel.Document, error)
	DeleteDocument(ctx context.Context, documentID int64) error
}

// Departments reports whether a department exists and is taking applications.
type Departments interface {
	AcceptsApplications(ctx context.Context, id int64) (bool, error)
}

type FileStore interface {
	SaveWithRecord(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy attachment.Policy, insert func(*attachment.StoredFile) error) (*attachment.StoredFile, error)
	Remove(urlPath string) error
}

type Service struct {
	repo        RepositoryAPI
	departments Departments
	files       FileStore
	events      events.Publisher
	renderer    pdfform.Renderer
	logger      *slog.Logger
	now         func() time.Time
}

func NewService(repo RepositoryAPI, departments Departments, files FileStore, publisher events.Publisher, renderer pdfform.Renderer, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		departments: departments,
		files:       files,
		events:      publisher,
		renderer:    renderer,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create records a submission. The department must currently accept
// applications. The form is linked to the caller's user, or failing that to
// the user registered with the same email.
func (s *Service) Create(ctx context.Context, identity *internal.Identity, dto *ApplicationDTO) (*applicationDatamodel.ApplicationForm, error) {
	a := &applicationDatamodel.ApplicationForm{Status: string(lifecycle.ApplicationPending)}
	f, err := Build(a, dto)
	if err != nil {
		return nil, err
	}

	open, err := s.departments.AcceptsApplications(ctx, dto.DepartmentID)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, internal.ErrApplicationClosed
	}

	userID, err := profileform.LinkUser(ctx, s.repo, identity, a.Email)
	if err != nil {
		s.logger.Error("failed to look up user by email", "error", err)
		return nil, err
	}
	a.UserID = userID
	a.SubmittedAt = s.now().UTC()

	if err := s.repo.Create(ctx, f); err != nil {
		s.logger.Error("failed to create application", "error", err, "department_id", dto.DepartmentID)
		return nil, err
	}
	s.logger.Info("application submitted", "application_id", a.ID, "department_id", dto.DepartmentID)
	return s.Get(ctx, a.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*applicationDatamodel.ApplicationForm, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get application", "error", err, "application_id", id)
		return nil, err
	}
	if a == nil {
		return nil, internal.ErrApplicationNotFound
	}
	return a, nil
}

// GetFor returns the application if identity may see it: staff see every
// form, applicants only their own.
func (s *Service) GetFor(ctx context.Context, identity *internal.Identity, id int64) (*applicationDatamodel.ApplicationForm, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !owns(identity, a) {
		return nil, internal.ErrForbidden
	}
	return a, nil
}

func owns(identity *internal.Identity, a *applicationDatamodel.ApplicationForm) bool {
	if identity.IsStaff() {
		return true
	}
	return identity != nil && a.UserID != nil && identity.UserID > 0 && *a.UserID == identity.UserID
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*pagination.Page[*applicationDatamodel.ApplicationForm], error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list applications", "error", err)
		return nil, err
	}
	page := pagination.NewPage(rows, total, filter.Page)
	return &page, nil
}

// Update replaces the applicant data and every child row. Status is
// changed only through UpdateStatus.
func (s *Service) Update(ctx context.Context, id int64, dto *ApplicationDTO) (*applicationDatamodel.ApplicationForm, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f, err := Build(a, dto)
	if err != nil {
		return nil, err
	}
	// Existence only; a staff correction may target a closed department.
	if _, err := s.departments.AcceptsApplications(ctx, dto.DepartmentID); err != nil {
		return nil, err
	}

	if err := s.repo.Replace(ctx, f); err != nil {
		s.logger.Error("failed to update application", "error", err, "application_id", id)
		return nil, err
	}
	s.logger.Info("application updated", "application_id", id)
	return s.Get(ctx, id)
}

// UpdateStatus moves the application along its lifecycle. Asking for the
// current status is a no-op and publishes nothing.
func (s *Service) UpdateStatus(ctx context.Context, id, actorID int64, dto *UpdateStatusDTO) (*applicationDatamodel.ApplicationForm, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	to, err := lifecycle.ParseApplicationStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := lifecycle.ApplicationStatus(a.Status)
	if from == to {
		return a, nil
	}
	if !from.CanTransitionTo(to) {
		return nil, lifecycle.TransitionError(from, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, string(to), strings.TrimSpace(dto.ReviewNotes)); err != nil {
		s.logger.Error("failed to update application status", "error", err, "application_id", id)
		return nil, err
	}
	s.logger.Info("application status changed", "application_id", id, "from", from, "to", to)

	event := events.NewStatusChangedEvent(events.EntityApplication, id, string(from), string(to), actorID)
	if err := s.events.PublishSync(ctx, event); err != nil {
		s.logger.Warn("status event handler failed", "error", err, "application_id", id)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete application", "error", err, "application_id", id)
		return err
	}
	for _, d := range a.Documents {
		if err := s.files.Remove(d.FilePath); err != nil {
			s.logger.Warn("failed to remove application document", "error", err, "path", d.FilePath)
		}
	}
	s.logger.Info("application deleted", "application_id", id)
	return nil
}

func (s *Service) UploadDocument(ctx context.Context, identity *internal.Identity, id int64, documentType string, fh *multipart.FileHeader) (*applicationDatamodel.Document, error) {
	docType, err := lifecycle.ParseDocumentType(documentType)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetFor(ctx, identity, id); err != nil {
		return nil, err
	}

	var row *applicationDatamodel.Document
	_, err = s.files.SaveWithRecord(ctx, attachment.DirDocuments, "application_"+strconv.FormatInt(id, 10), fh, attachment.DocumentPolicy,
		func(stored *attachment.StoredFile) error {
			row = &applicationDatamodel.Document{ApplicationID: id, DocumentType: string(docType), File: stored.ToFile()}
			return s.repo.CreateDocument(ctx, row)
		})
	if err != nil {
		s.logger.Error("failed to upload application document", "error", err, "application_id", id)
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
		s.logger.Error("failed to delete application document", "error", err, "application_id", id)
		return err
	}
	if err := s.files.Remove(d.FilePath); err != nil {
		s.logger.Warn("failed to remove application document", "error", err, "path", d.FilePath)
	}
	return nil
}

func (s *Service) RenderPDF(ctx context.Context, id int64, w io.Writer) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.renderer.Render(w, a); err != nil {
		s.logger.Error("failed to render application pdf", "error", err, "application_id", id)
		return internal.NewInternalError("failed to render application", err)
	}
	return nil
}

func ParseListFilter(status, search string, departmentID *int64, page pagination.Params) (ListFilter, error) {
	st, err := lifecycle.ParseStatusFilter(status, lifecycle.ApplicationStatuses)
	if err != nil {
		return ListFilter{}, err
	}
	return ListFilter{Status: st, DepartmentID: departmentID, Search: search, Page: page}, nil
}
