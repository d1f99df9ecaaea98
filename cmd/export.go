package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/frahmantamala/hospital-careers/internal/application"
	applicationPostgres "github.com/frahmantamala/hospital-careers/internal/application/postgres"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/department"
	departmentPostgres "github.com/frahmantamala/hospital-careers/internal/department/postgres"
	"github.com/frahmantamala/hospital-careers/internal/pdfform"
	"github.com/frahmantamala/hospital-careers/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	exportStatus       string
	exportSearch       string
	exportDepartmentID int64
	exportOutput       string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to spreadsheets",
}

var exportApplicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "Write application forms to an xlsx file",
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

		lg := logger.LoggerWrapper()
		store := attachment.NewStore(cfg.Storage, lg)
		renderer, err := pdfform.NewRenderer(cfg.PDF)
		if err != nil {
			log.Fatalf("failed to init pdf renderer: %v", err)
		}
		departments := department.NewService(departmentPostgres.NewDepartmentRepository(db.Gorm), store, lg)
		service := application.NewService(applicationPostgres.NewApplicationRepository(db.Gorm), departments, store, &events.Recorder{}, renderer, lg)

		var departmentID *int64
		if exportDepartmentID > 0 {
			departmentID = &exportDepartmentID
		}
		filter, err := application.ParseListFilter(exportStatus, exportSearch, departmentID, pagination.Params{})
		if err != nil {
			log.Fatalf("invalid filter: %v", err)
		}

		path := exportOutput
		if path == "" {
			path = application.ExportFileName(time.Now())
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Fatalf("failed to create output directory: %v", err)
		}
		f, err := os.Create(path)
		if err != nil {
			log.Fatalf("failed to create %s: %v", path, err)
		}
		defer f.Close()

		n, err := service.Export(context.Background(), filter, f)
		if err != nil {
			log.Fatalf("export failed: %v", err)
		}
		fmt.Printf("exported %d applications to %s\n", n, path)
	},
}

func init() {
	exportApplicationsCmd.Flags().StringVar(&exportStatus, "status", "", "only forms in this status")
	exportApplicationsCmd.Flags().StringVar(&exportSearch, "search", "", "name, email or position contains")
	exportApplicationsCmd.Flags().Int64Var(&exportDepartmentID, "department", 0, "only forms for this department id")
	exportApplicationsCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path, defaults to a dated file name")

	exportCmd.AddCommand(exportApplicationsCmd)
}
