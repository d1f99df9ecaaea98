// Package report builds the back-office dashboard from aggregate SQL.
package report

import "time"

// StatusCounts maps every status of one entity to its row count; statuses
// without rows are present with zero.
type StatusCounts struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type MissionGroupCount struct {
	ID              int64  `json:"id" db:"id"`
	Name            string `json:"name" db:"name"`
	Code            string `json:"code" db:"code"`
	DepartmentCount int64  `json:"department_count" db:"department_count"`
}

type Dashboard struct {
	Applications          StatusCounts        `json:"applications"`
	Resumes               StatusCounts        `json:"resumes"`
	ContractRenewals      StatusCounts        `json:"contract_renewals"`
	UsersByRole           map[string]int64    `json:"users_by_role"`
	MissionGroups         []MissionGroupCount `json:"mission_groups"`
	UnassignedDepartments int64               `json:"unassigned_departments"`
	GeneratedAt           time.Time           `json:"generated_at"`
}

// GroupCount is one row of a GROUP BY count.
type GroupCount struct {
	Key   string `db:"group_key"`
	Count int64  `db:"count"`
}

func newStatusCounts[T ~string](rows []GroupCount, statuses []T) StatusCounts {
	c := StatusCounts{ByStatus: make(map[string]int64, len(statuses))}
	for _, s := range statuses {
		c.ByStatus[string(s)] = 0
	}
	for _, r := range rows {
		c.ByStatus[r.Key] += r.Count
		c.Total += r.Count
	}
	return c
}
