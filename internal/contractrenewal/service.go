package contractrenewal

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	renewalDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/contractrenewal"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

// Review is the decision written by UpdateStatus.
type Review struct {
	Status     string
	ReviewedBy *int64
	ReviewedAt time.Time
	Notes      string
}

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*renewalDatamodel.ContractRenewal, error)
	List(ctx context.Context, filter ListFilter) ([]*renewalDatamodel.ContractRenewal, int64, error)
	Create(ctx context.Context, c *renewalDatamodel.ContractRenewal) error
	Update(ctx context.Context, c *renewalDatamodel.ContractRenewal) error
	UpdateStatus(ctx context.Context, id int64, review Review) error
	Delete(ctx context.Context, id int64) error
	CreateAttachment(ctx context.Context, a *renewalDatamodel.Attachment) error
	GetAttachment(ctx context.Context, renewalID, attachmentID int64) (*renewalDatamodel.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID int64) error
}

type FileStore interface {
	SaveWithRecord(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy attachment.Policy, insert func(*attachment.StoredFile) error) (*attachment.StoredFile, error)
	Remove(urlPath string) error
}

type Service struct {
	repo   RepositoryAPI
	files  FileStore
	events events.Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, files FileStore, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		events: publisher,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Create(ctx context.Context, dto *RenewalDTO) (*renewalDatamodel.ContractRenewal, error) {
	c := &renewalDatamodel.ContractRenewal{Status: string(lifecycle.RenewalPending)}
	if err := Apply(c, dto); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("failed to create contract renewal", "error", err, "employee_id", c.EmployeeID)
		return nil, err
	}
	s.logger.Info("contract renewal created", "contract_renewal_id", c.ID, "employee_id", c.EmployeeID)
	return s.Get(ctx, c.ID)
}

func (s *Service) Get(ctx context.Context, id int64) (*renewalDatamodel.ContractRenewal, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get contract renewal", "error", err, "contract_renewal_id", id)
		return nil, err
	}
	if c == nil {
		return nil, internal.ErrContractRenewalNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*pagination.Page[*renewalDatamodel.ContractRenewal], error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list contract renewals", "error", err)
		return nil, err
	}
	page := pagination.NewPage(rows, total, filter.Page)
	return &page, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto *RenewalDTO) (*renewalDatamodel.ContractRenewal, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Apply(c, dto); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		s.logger.Error("failed to update contract renewal", "error", err, "contract_renewal_id", id)
		return nil, err
	}
	s.logger.Info("contract renewal updated", "contract_renewal_id", id)
	return s.Get(ctx, id)
}

// UpdateStatus records the review decision. Only a PENDING renewal can be
// decided; asking for the current status is a no-op. Attachments are not
// touched.
func (s *Service) UpdateStatus(ctx context.Context, id, actorID int64, dto *UpdateStatusDTO) (*renewalDatamodel.ContractRenewal, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	to, err := lifecycle.ParseRenewalStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := lifecycle.RenewalStatus(c.Status)
	if from == to {
		return c, nil
	}
	if !from.CanTransitionTo(to) {
		return nil, lifecycle.TransitionError(from, to)
	}

	review := Review{Status: string(to), ReviewedAt: s.now().UTC(), Notes: strings.TrimSpace(dto.Notes)}
	if actorID > 0 {
		review.ReviewedBy = &actorID
	}
	if err := s.repo.UpdateStatus(ctx, id, review); err != nil {
		s.logger.Error("failed to update contract renewal status", "error", err, "contract_renewal_id", id)
		return nil, err
	}
	s.logger.Info("contract renewal reviewed", "contract_renewal_id", id, "from", from, "to", to)

	event := events.NewStatusChangedEvent(events.EntityContractRenewal, id, string(from), string(to), actorID)
	if err := s.events.PublishSync(ctx, event); err != nil {
		s.logger.Warn("status event handler failed", "error", err, "contract_renewal_id", id)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete contract renewal", "error", err, "contract_renewal_id", id)
		return err
	}
	for _, a := range c.Attachments {
		if err := s.files.Remove(a.FilePath); err != nil {
			s.logger.Warn("failed to remove contract attachment", "error", err, "path", a.FilePath)
		}
	}
	s.logger.Info("contract renewal deleted", "contract_renewal_id", id)
	return nil
}

func (s *Service) UploadAttachment(ctx context.Context, id int64, fh *multipart.FileHeader) (*renewalDatamodel.Attachment, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	var row *renewalDatamodel.Attachment
	_, err := s.files.SaveWithRecord(ctx, attachment.DirContracts, "renewal_"+strconv.FormatInt(id, 10), fh, attachment.DocumentPolicy,
		func(stored *attachment.StoredFile) error {
			row = &renewalDatamodel.Attachment{ContractRenewalID: id, File: stored.ToFile()}
			return s.repo.CreateAttachment(ctx, row)
		})
	if err != nil {
		s.logger.Error("failed to upload contract attachment", "error", err, "contract_renewal_id", id)
		return nil, err
	}
	return row, nil
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
		s.logger.Error("failed to delete contract attachment", "error", err, "contract_renewal_id", id)
		return err
	}
	if err := s.files.Remove(a.FilePath); err != nil {
		s.logger.Warn("failed to remove contract attachment", "error", err, "path", a.FilePath)
	}
	return nil
}

func ParseListFilter(status, department, search string, page pagination.Params) (ListFilter, error) {
	st, err := lifecycle.ParseStatusFilter(status, lifecycle.RenewalStatuses)
	if err != nil {
		return ListFilter{}, err
	}
	return ListFilter{Status: st, Department: strings.TrimSpace(department), Search: search, Page: page}, nil
}
