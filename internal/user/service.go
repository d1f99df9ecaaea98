package user

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	GetByLineID(ctx context.Context, lineID string) (*userDatamodel.User, error)
	Create(ctx context.Context, p *Profile) error
	ReplaceProfile(ctx context.Context, p *Profile) error
	List(ctx context.Context, filter ListFilter) ([]*userDatamodel.User, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	UpdateProfileImage(ctx context.Context, id int64, path string) error
	Delete(ctx context.Context, id int64) error
}

type FileStore interface {
	Save(ctx context.Context, dir, prefix string, fh *multipart.FileHeader, policy attachment.Policy) (*attachment.StoredFile, error)
	Remove(urlPath string) error
}

type Service struct {
	repo   RepositoryAPI
	files  FileStore
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, files FileStore, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		logger: logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, err
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) GetByLineID(ctx context.Context, lineID string) (*userDatamodel.User, error) {
	u, err := s.repo.GetByLineID(ctx, strings.TrimSpace(lineID))
	if err != nil {
		s.logger.Error("failed to get user by line id", "error", err)
		return nil, err
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

// Me resolves the caller's own record, preferring the user id claim.
func (s *Service) Me(ctx context.Context, identity *internal.Identity) (*userDatamodel.User, error) {
	if identity.UserID > 0 {
		return s.GetByID(ctx, identity.UserID)
	}
	if identity.LineID == "" {
		return nil, internal.ErrUserNotFound
	}
	return s.GetByLineID(ctx, identity.LineID)
}

// Register creates the applicant record for a LINE identity on first login.
func (s *Service) Register(ctx context.Context, identity *internal.Identity, dto *ProfileDTO) (*userDatamodel.User, error) {
	if identity.LineID == "" {
		return nil, internal.NewValidationError("registration requires a LINE identity", internal.ErrCodeValidationFailed)
	}
	existing, err := s.repo.GetByLineID(ctx, identity.LineID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("user is already registered", internal.ErrCodeDuplicate)
	}

	if dto.Person.Email == "" {
		dto.Person.Email = identity.Email
	}
	p, err := BuildProfile(NewApplicant(identity.LineID), dto)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to register user", "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", p.User.ID)
	return s.GetByID(ctx, p.User.ID)
}

// UpdateProfile replaces the personal data and every education and work
// experience row of the user with the contents of dto.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, dto *ProfileDTO) (*userDatamodel.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := BuildProfile(u, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceProfile(ctx, p); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, err
	}
	return s.GetByID(ctx, userID)
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*pagination.Page[*userDatamodel.User], error) {
	rows, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	page := pagination.NewPage(rows, total, filter.Page)
	return &page, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, dto *UpdateStatusDTO) (*userDatamodel.User, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	status, err := lifecycle.ParseUserStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Status == string(status) {
		return u, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, string(status)); err != nil {
		s.logger.Error("failed to update user status", "error", err, "user_id", id)
		return nil, err
	}
	s.logger.Info("user status changed", "user_id", id, "from", u.Status, "to", status)
	return s.GetByID(ctx, id)
}

// Delete removes the user and their profile rows. Applications and resumes
// they submitted stay, unlinked.
func (s *Service) Delete(ctx context.Context, id int64) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}
	s.removeImage(u.ProfileImage)
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// UploadProfileImage stores a new image and drops the previous one.
func (s *Service) UploadProfileImage(ctx context.Context, userID int64, fh *multipart.FileHeader) (*userDatamodel.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	stored, err := s.files.Save(ctx, attachment.DirProfiles, "profile_"+strconv.FormatInt(userID, 10), fh, attachment.ImagePolicy)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfileImage(ctx, userID, stored.Path); err != nil {
		s.logger.Error("failed to save profile image path", "error", err, "user_id", userID)
		s.removeImage(stored.Path)
		return nil, err
	}
	s.removeImage(u.ProfileImage)
	return s.GetByID(ctx, userID)
}

func (s *Service) removeImage(path string) {
	if path == "" {
		return
	}
	if err := s.files.Remove(path); err != nil {
		s.logger.Warn("failed to remove profile image", "error", err, "path", path)
	}
}

func ParseListFilter(role, status, search string, page pagination.Params) (ListFilter, error) {
	r, err := lifecycle.ParseStatusFilter(role, lifecycle.UserRoles)
	if err != nil {
		return ListFilter{}, err
	}
	st, err := lifecycle.ParseStatusFilter(status, lifecycle.UserStatuses)
	if err != nil {
		return ListFilter{}, err
	}
	return ListFilter{Role: r, Status: st, Search: search, Page: page}, nil
}
