package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/frahmantamala/hospital-careers/internal/missiongroup"
	missiongroupPostgres "github.com/frahmantamala/hospital-careers/internal/missiongroup/postgres"
	"github.com/frahmantamala/hospital-careers/pkg/logger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var missionGroupCmd = &cobra.Command{
	Use:   "missiongroup",
	Short: "Mission group maintenance",
}

var missionGroupMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Assign departments to mission groups by name",
	Long: `Match every department name against the canonical names of each mission group
and set the mission group where it differs. Safe to run repeatedly; prints the
matched and unmatched departments.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		mapping, err := missiongroup.DefaultMapping()
		if err != nil {
			log.Fatalf("failed to load mission group mapping: %v", err)
		}
		service := missiongroup.NewService(missiongroupPostgres.NewMissionGroupRepository(db.Gorm), mapping, logger.LoggerWrapper())

		report, err := service.MapDepartments(context.Background())
		if err != nil {
			log.Fatalf("mapping failed: %v", err)
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			log.Fatalf("failed to print report: %v", err)
		}
		_ = enc.Close()
		fmt.Printf("matched %d, unmatched %d, updated %d\n", len(report.Matched), len(report.Unmatched), report.Updated)
	},
}

func init() {
	missionGroupCmd.AddCommand(missionGroupMapCmd)
}
