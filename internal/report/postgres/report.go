package postgres

import (
	"context"
	"fmt"

	"github.com/frahmantamala/hospital-careers/internal/report"
	"github.com/jmoiron/sqlx"
)

type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

var statusTables = map[string]bool{
	report.TableApplications:     true,
	report.TableResumes:          true,
	report.TableContractRenewals: true,
}

func (r *ReportRepository) CountByStatus(ctx context.Context, table string) ([]report.GroupCount, error) {
	if !statusTables[table] {
		return nil, fmt.Errorf("report: %q has no status column", table)
	}
	var rows []report.GroupCount
	query := fmt.Sprintf(`SELECT status AS group_key, COUNT(*) AS count FROM %s GROUP BY status`, table)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) CountUsersByRole(ctx context.Context) ([]report.GroupCount, error) {
	var rows []report.GroupCount
	if err := r.db.SelectContext(ctx, &rows, `SELECT role AS group_key, COUNT(*) AS count FROM users GROUP BY role`); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) MissionGroupDepartments(ctx context.Context) ([]report.MissionGroupCount, error) {
	const query = `
		SELECT mg.id, mg.name, mg.code, COUNT(d.id) AS department_count
		FROM mission_groups mg
		LEFT JOIN departments d ON d.mission_group_id = mg.id
		GROUP BY mg.id, mg.name, mg.code, mg.display_order
		ORDER BY mg.display_order ASC, mg.id ASC`
	var rows []report.MissionGroupCount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) CountUnassignedDepartments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM departments WHERE mission_group_id IS NULL AND status <> ?`), "INACTIVE")
	return n, err
}
