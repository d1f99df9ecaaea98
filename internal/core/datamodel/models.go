package datamodel

import (
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/contractrenewal"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/department"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/missiongroup"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/resume"
	"github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
)

// All lists every table model, parents before children. The SQL migrations
// under db/migrations are the source of truth for Postgres; this list backs
// AutoMigrate in tests.
func All() []interface{} {
	return []interface{}{
		&missiongroup.MissionGroup{},
		&department.Department{},
		&department.Attachment{},
		&user.User{},
		&user.Education{},
		&user.WorkExperience{},
		&application.ApplicationForm{},
		&application.Education{},
		&application.WorkExperience{},
		&application.Document{},
		&resume.ResumeDeposit{},
		&resume.Education{},
		&resume.WorkExperience{},
		&resume.GovernmentService{},
		&resume.Document{},
		&contractrenewal.ContractRenewal{},
		&contractrenewal.Attachment{},
	}
}
