package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/application"
	applicationPostgres "github.com/frahmantamala/hospital-careers/internal/application/postgres"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/auth"
	authPostgres "github.com/frahmantamala/hospital-careers/internal/auth/postgres"
	"github.com/frahmantamala/hospital-careers/internal/contractrenewal"
	renewalPostgres "github.com/frahmantamala/hospital-careers/internal/contractrenewal/postgres"
	"github.com/frahmantamala/hospital-careers/internal/core/events"
	"github.com/frahmantamala/hospital-careers/internal/department"
	departmentPostgres "github.com/frahmantamala/hospital-careers/internal/department/postgres"
	"github.com/frahmantamala/hospital-careers/internal/missiongroup"
	missiongroupPostgres "github.com/frahmantamala/hospital-careers/internal/missiongroup/postgres"
	"github.com/frahmantamala/hospital-careers/internal/pdfform"
	"github.com/frahmantamala/hospital-careers/internal/report"
	reportPostgres "github.com/frahmantamala/hospital-careers/internal/report/postgres"
	"github.com/frahmantamala/hospital-careers/internal/resume"
	resumePostgres "github.com/frahmantamala/hospital-careers/internal/resume/postgres"
	"github.com/frahmantamala/hospital-careers/internal/transport"
	"github.com/frahmantamala/hospital-careers/internal/transport/rest"
	"github.com/frahmantamala/hospital-careers/internal/transport/swagger"
	"github.com/frahmantamala/hospital-careers/internal/user"
	userPostgres "github.com/frahmantamala/hospital-careers/internal/user/postgres"
	"github.com/frahmantamala/hospital-careers/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// Database shares one pgx pool between gorm (repositories) and sqlx (reports).
type Database struct {
	SQL  *sql.DB
	SQLX *sqlx.DB
	Gorm *gorm.DB
}

func (d *Database) Close() error {
	return d.SQL.Close()
}

type Dependencies struct {
	Config   *internal.Config
	DB       *Database
	Router   *chi.Mux
	Logger   *slog.Logger
	Handlers rest.Handlers
	Verifier *auth.Service
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, rest.RouterConfig{
		AllowedOrigins: deps.Config.Server.AllowedOrigins,
		OpenAPIPath:    deps.Config.Server.OpenAPIPath,
		UploadsPrefix:  deps.Config.Storage.URLPrefix,
		StorageRoot:    deps.Config.Storage.PublicRoot,
	}, deps.DB.SQL, deps.Verifier, deps.Handlers, deps.Logger)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	lg := logger.Setup(os.Stdout, config.Observability.Logging.Level, config.Observability.Logging.Format)

	if config.Server.OpenAPIPath != "" {
		if _, err := swagger.Load(context.Background(), config.Server.OpenAPIPath); err != nil {
			return nil, err
		}
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	store := attachment.NewStore(config.Storage, lg)
	renderer, err := pdfform.NewRenderer(config.PDF)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize pdf renderer: %w", err)
	}
	mapping, err := missiongroup.DefaultMapping()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load mission group mapping: %w", err)
	}

	base := transport.NewBaseHandler(lg)
	limit := config.Storage.UploadLimit()

	authService := auth.NewService(
		authPostgres.NewRepository(db.Gorm),
		auth.NewJWTTokenGenerator(config.Security.IdentitySecret, config.Security.AccessTokenDuration),
		config.Security.BCryptCost,
		lg,
	)
	departmentService := department.NewService(departmentPostgres.NewDepartmentRepository(db.Gorm), store, lg)
	applicationService := application.NewService(
		applicationPostgres.NewApplicationRepository(db.Gorm), departmentService, store, bus, renderer, lg)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(base, authService),
		User:         user.NewHandler(base, user.NewService(userPostgres.NewUserRepository(db.Gorm), store, lg), limit),
		Department:   department.NewHandler(base, departmentService, limit),
		MissionGroup: missiongroup.NewHandler(base, missiongroup.NewService(missiongroupPostgres.NewMissionGroupRepository(db.Gorm), mapping, lg)),
		Application:  application.NewHandler(base, applicationService, limit),
		Resume: resume.NewHandler(base,
			resume.NewService(resumePostgres.NewResumeRepository(db.Gorm), store, bus, lg), limit),
		ContractRenewal: contractrenewal.NewHandler(base,
			contractrenewal.NewService(renewalPostgres.NewContractRenewalRepository(db.Gorm), store, bus, lg), limit),
		Report:  report.NewHandler(base, report.NewService(reportPostgres.NewReportRepository(db.SQLX), lg)),
		Uploads: rest.NewUploadsHandler(base, store),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
		Verifier: authService,
	}, nil
}

// initDB opens the pgx pool and layers sqlx and gorm over it.
func initDB(cfg internal.DatabaseConfig) (*Database, error) {
	const driver = "pgx"

	sqlDB, err := sql.Open(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return &Database{
		SQL:  sqlDB,
		SQLX: sqlx.NewDb(sqlDB, driver),
		Gorm: gormDB,
	}, nil
}
