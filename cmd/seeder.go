package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal/auth"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/missiongroup"
	missiongroupPostgres "github.com/frahmantamala/hospital-careers/internal/missiongroup/postgres"
	"github.com/frahmantamala/hospital-careers/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed mission groups and the first admin account",
	Long:  `Upsert the fixed mission groups and create an admin account when none exists for the given email.`,
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

		ctx := context.Background()
		lg := logger.LoggerWrapper()

		mapping, err := missiongroup.DefaultMapping()
		if err != nil {
			log.Fatalf("failed to load mission group mapping: %v", err)
		}
		groups := missiongroup.NewService(missiongroupPostgres.NewMissionGroupRepository(db.Gorm), mapping, lg)
		if err := groups.Seed(ctx); err != nil {
			log.Fatalf("failed to seed mission groups: %v", err)
		}
		fmt.Println("Seeded mission groups:", len(mapping.Groups))

		if adminPassword == "" {
			fmt.Println("no --admin-password given; skipping admin account")
			return
		}

		email := strings.ToLower(strings.TrimSpace(adminEmail))
		var exists int
		row := db.Gorm.Raw("SELECT 1 FROM users WHERE LOWER(email) = ?", email).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("admin user already exists:", email)
			return
		}

		hash, err := auth.HashPassword(adminPassword, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash admin password: %v", err)
		}

		admin := &userDatamodel.User{PasswordHash: &hash, Role: "ADMIN", Status: "ACTIVE"}
		admin.Email = email
		admin.FirstName = adminName
		if err := db.Gorm.WithContext(ctx).Omit("Educations", "WorkExperiences").Create(admin).Error; err != nil {
			log.Fatalf("failed to insert admin user: %v", err)
		}
		fmt.Println("Seeded admin user:", email)
	},
}

func init() {
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@hospital.local", "email of the admin account")
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "", "password of the admin account")
	seedCmd.Flags().StringVar(&adminName, "admin-name", "ผู้ดูแลระบบ", "display name of the admin account")
}
