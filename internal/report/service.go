package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/hospital-careers/internal/core/lifecycle"
)

type RepositoryAPI interface {
	CountByStatus(ctx context.Context, table string) ([]GroupCount, error)
	CountUsersByRole(ctx context.Context) ([]GroupCount, error)
	MissionGroupDepartments(ctx context.Context) ([]MissionGroupCount, error)
	CountUnassignedDepartments(ctx context.Context) (int64, error)
}

const (
	TableApplications     = "application_forms"
	TableResumes          = "resume_deposits"
	TableContractRenewals = "contract_renewals"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	applications, err := s.repo.CountByStatus(ctx, TableApplications)
	if err != nil {
		s.logger.Error("failed to count applications", "error", err)
		return nil, err
	}
	resumes, err := s.repo.CountByStatus(ctx, TableResumes)
	if err != nil {
		s.logger.Error("failed to count resumes", "error", err)
		return nil, err
	}
	renewals, err := s.repo.CountByStatus(ctx, TableContractRenewals)
	if err != nil {
		s.logger.Error("failed to count contract renewals", "error", err)
		return nil, err
	}
	roles, err := s.repo.CountUsersByRole(ctx)
	if err != nil {
		s.logger.Error("failed to count users", "error", err)
		return nil, err
	}
	groups, err := s.repo.MissionGroupDepartments(ctx)
	if err != nil {
		s.logger.Error("failed to count departments per mission group", "error", err)
		return nil, err
	}
	unassigned, err := s.repo.CountUnassignedDepartments(ctx)
	if err != nil {
		s.logger.Error("failed to count unassigned departments", "error", err)
		return nil, err
	}

	usersByRole := make(map[string]int64, len(lifecycle.UserRoles))
	for _, r := range lifecycle.UserRoles {
		usersByRole[string(r)] = 0
	}
	for _, r := range roles {
		usersByRole[r.Key] += r.Count
	}
	if groups == nil {
		groups = []MissionGroupCount{}
	}

	return &Dashboard{
		Applications:          newStatusCounts(applications, lifecycle.ApplicationStatuses),
		Resumes:               newStatusCounts(resumes, lifecycle.ResumeStatuses),
		ContractRenewals:      newStatusCounts(renewals, lifecycle.RenewalStatuses),
		UsersByRole:           usersByRole,
		MissionGroups:         groups,
		UnassignedDepartments: unassigned,
		GeneratedAt:           s.now().UTC(),
	}, nil
}
