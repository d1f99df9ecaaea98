package missiongroup

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/core/common/validation"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/missiongroup"
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*missiongroup.MissionGroup, error)
	GetByID(ctx context.Context, id int64) (*missiongroup.MissionGroup, error)
	GetByCode(ctx context.Context, code string) (*missiongroup.MissionGroup, error)
	Create(ctx context.Context, mg *missiongroup.MissionGroup) error
	Update(ctx context.Context, mg *missiongroup.MissionGroup) error
	Delete(ctx context.Context, id int64) error
	Upsert(ctx context.Context, groups []*missiongroup.MissionGroup) error
	DepartmentCounts(ctx context.Context) (map[int64]int64, error)
	ListDepartments(ctx context.Context) ([]DepartmentRef, error)
	// AssignDepartment returns false when the department does not exist.
	AssignDepartment(ctx context.Context, departmentID int64, groupID *int64) (bool, error)
	AssignDepartments(ctx context.Context, byDepartment map[int64]int64) error
}

type Service struct {
	repo    RepositoryAPI
	mapping *Mapping
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, mapping *Mapping, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		mapping: mapping,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context) ([]MissionGroupResponse, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list mission groups", "error", err)
		return nil, err
	}
	counts, err := s.repo.DepartmentCounts(ctx)
	if err != nil {
		s.logger.Error("failed to count departments per mission group", "error", err)
		return nil, err
	}

	responses := make([]MissionGroupResponse, 0, len(groups))
	for _, g := range groups {
		responses = append(responses, ToResponse(g, counts[g.ID]))
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*MissionGroupResponse, error) {
	mg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.DepartmentCounts(ctx)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(mg, counts[mg.ID])
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, dto *CreateMissionGroupDTO) (*MissionGroupResponse, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	mg, err := NewMissionGroup(dto)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, mg.Code, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, mg); err != nil {
		s.logger.Error("failed to create mission group", "error", err, "code", mg.Code)
		return nil, err
	}
	s.logger.Info("mission group created", "mission_group_id", mg.ID, "code", mg.Code)
	resp := ToResponse(mg, 0)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto *UpdateMissionGroupDTO) (*MissionGroupResponse, error) {
	if appErr := validation.Struct(dto); appErr != nil {
		return nil, appErr
	}
	mg, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ApplyUpdate(mg, dto); err != nil {
		return nil, err
	}
	if err := s.ensureCodeFree(ctx, mg.Code, mg.ID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, mg); err != nil {
		s.logger.Error("failed to update mission group", "error", err, "mission_group_id", id)
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the group; its departments keep existing without a group.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete mission group", "error", err, "mission_group_id", id)
		return err
	}
	s.logger.Info("mission group deleted", "mission_group_id", id)
	return nil
}

// AssignDepartment sets or clears a department's mission group directly.
func (s *Service) AssignDepartment(ctx context.Context, departmentID int64, groupID *int64) error {
	if groupID != nil {
		if _, err := s.find(ctx, *groupID); err != nil {
			return err
		}
	}
	found, err := s.repo.AssignDepartment(ctx, departmentID, groupID)
	if err != nil {
		s.logger.Error("failed to assign department", "error", err, "department_id", departmentID)
		return err
	}
	if !found {
		return internal.ErrDepartmentNotFound
	}
	s.logger.Info("department mission group assigned", "department_id", departmentID, "mission_group_id", groupID)
	return nil
}

// Seed creates the groups of the mapping table, refreshing names and order
// of groups that already exist.
func (s *Service) Seed(ctx context.Context) error {
	groups := make([]*missiongroup.MissionGroup, 0, len(s.mapping.Groups))
	for i, g := range s.mapping.Groups {
		groups = append(groups, &missiongroup.MissionGroup{
			Name:         g.Name,
			Code:         g.Code,
			Description:  g.Description,
			DisplayOrder: i + 1,
			Status:       "ACTIVE",
		})
	}
	if err := s.repo.Upsert(ctx, groups); err != nil {
		s.logger.Error("failed to seed mission groups", "error", err)
		return err
	}
	s.logger.Info("mission groups seeded", "count", len(groups))
	return nil
}

// MapDepartments assigns every department whose name matches the mapping
// table. Only departments whose matched group differs from the current one
// are written, so running it again changes nothing. Departments without a
// match are reported and left as they are.
func (s *Service) MapDepartments(ctx context.Context) (*MappingReport, error) {
	groupIDs := make(map[string]int64, len(s.mapping.Groups))
	report := &MappingReport{Matched: []Assignment{}, Unmatched: []Unmatched{}}
	for _, g := range s.mapping.Groups {
		mg, err := s.repo.GetByCode(ctx, g.Code)
		if err != nil {
			return nil, err
		}
		if mg == nil {
			report.MissingGroups = append(report.MissingGroups, g.Code)
			continue
		}
		groupIDs[g.Code] = mg.ID
	}
	if len(report.MissingGroups) > 0 {
		s.logger.Warn("mapping groups missing from database, run the seeder first", "codes", report.MissingGroups)
	}

	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		s.logger.Error("failed to list departments for mapping", "error", err)
		return nil, err
	}

	changes := make(map[int64]int64)
	for _, d := range departments {
		code, ok := s.mapping.Match(d.Name)
		groupID, known := groupIDs[code]
		if !ok || !known {
			report.Unmatched = append(report.Unmatched, Unmatched{DepartmentID: d.ID, DepartmentName: d.Name})
			continue
		}

		changed := d.MissionGroupID == nil || *d.MissionGroupID != groupID
		if changed {
			changes[d.ID] = groupID
		}
		report.Matched = append(report.Matched, Assignment{
			DepartmentID:     d.ID,
			DepartmentName:   d.Name,
			MissionGroupID:   groupID,
			MissionGroupCode: code,
			Changed:          changed,
		})
	}

	if len(changes) > 0 {
		if err := s.repo.AssignDepartments(ctx, changes); err != nil {
			s.logger.Error("failed to apply mission group mapping", "error", err)
			return nil, err
		}
	}
	report.Updated = len(changes)

	s.logger.Info("mission group mapping finished",
		"matched", len(report.Matched),
		"unmatched", len(report.Unmatched),
		"updated", report.Updated)
	return report, nil
}

func (s *Service) find(ctx context.Context, id int64) (*missiongroup.MissionGroup, error) {
	mg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get mission group", "error", err, "mission_group_id", id)
		return nil, err
	}
	if mg == nil {
		return nil, internal.ErrMissionGroupNotFound
	}
	return mg, nil
}

func (s *Service) ensureCodeFree(ctx context.Context, code string, selfID int64) error {
	existing, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError("mission group code already exists", internal.ErrCodeDuplicate)
	}
	return nil
}
