package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal/application"
	"github.com/frahmantamala/hospital-careers/internal/auth"
	"github.com/frahmantamala/hospital-careers/internal/contractrenewal"
	"github.com/frahmantamala/hospital-careers/internal/department"
	"github.com/frahmantamala/hospital-careers/internal/missiongroup"
	"github.com/frahmantamala/hospital-careers/internal/report"
	"github.com/frahmantamala/hospital-careers/internal/resume"
	"github.com/frahmantamala/hospital-careers/internal/transport/middleware"
	"github.com/frahmantamala/hospital-careers/internal/transport/swagger"
	"github.com/frahmantamala/hospital-careers/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth            *auth.Handler
	User            *user.Handler
	Department      *department.Handler
	MissionGroup    *missiongroup.Handler
	Application     *application.Handler
	Resume          *resume.Handler
	ContractRenewal *contractrenewal.Handler
	Report          *report.Handler
	Uploads         *UploadsHandler
}

type RouterConfig struct {
	AllowedOrigins string
	OpenAPIPath    string
	UploadsPrefix  string
	StorageRoot    string
}

func RegisterAllRoutes(router *chi.Mux, cfg RouterConfig, db *sql.DB, verifier middleware.TokenVerifier, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, cfg.StorageRoot)

	// Apply global middleware
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI document at root, outside the API prefix
	openAPIPath := cfg.OpenAPIPath
	if openAPIPath == "" {
		openAPIPath = "./api/openapi.yml"
	}
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, openAPIPath)
	})
	router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))

	if h.Uploads != nil {
		prefix := cfg.UploadsPrefix
		if prefix == "" {
			prefix = "/uploads"
		}
		router.Get(prefix+"/{dir}/{name}", h.Uploads.ServeUpload)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Group(func(pr chi.Router) {
			// Tokens are optional here; a bad one is still rejected.
			pr.Use(middleware.Identify(verifier))

			// Public job board and submissions
			pr.Get("/openings", h.Department.ListOpenings)
			pr.Get("/departments/{id}", h.Department.GetDepartment)
			pr.Get("/mission-groups", h.MissionGroup.ListMissionGroups)
			pr.Get("/mission-groups/{id}", h.MissionGroup.GetMissionGroup)
			pr.Post("/auth/login", h.Auth.Login)
			pr.Post("/applications", h.Application.CreateApplication)
			pr.Post("/resumes", h.Resume.CreateResume)

			// Any verified caller
			pr.Group(func(ir chi.Router) {
				ir.Use(middleware.RequireIdentity)

				ir.Get("/auth/me", h.Auth.Me)
				ir.Get("/profile", h.User.GetProfile)
				ir.Post("/profile", h.User.Register)
				ir.Put("/profile", h.User.UpdateProfile)
				ir.Post("/profile/image", h.User.UploadProfileImage)

				ir.Get("/me/applications", h.Application.ListMyApplications)
				ir.Get("/me/resumes", h.Resume.ListMyResumes)

				ir.Get("/applications/{id}", h.Application.GetApplication)
				ir.Post("/applications/{id}/documents", h.Application.UploadDocument)
				ir.Get("/resumes/{id}", h.Resume.GetResume)
				ir.Post("/resumes/{id}/documents", h.Resume.UploadDocument)
			})

			// Back office
			pr.Group(func(sr chi.Router) {
				sr.Use(middleware.RequireStaff)

				sr.Get("/dashboard", h.Report.GetDashboard)

				sr.Get("/departments", h.Department.ListDepartments)
				sr.Post("/departments", h.Department.CreateDepartment)
				sr.Put("/departments/{id}", h.Department.UpdateDepartment)
				sr.Delete("/departments/{id}", h.Department.DeleteDepartment)
				sr.Post("/departments/{id}/attachments", h.Department.UploadAttachment)
				sr.Delete("/departments/{id}/attachments/{attachmentID}", h.Department.DeleteAttachment)
				sr.Put("/departments/{id}/mission-group", h.MissionGroup.AssignDepartment)

				sr.Post("/mission-groups", h.MissionGroup.CreateMissionGroup)
				sr.Post("/mission-groups/map", h.MissionGroup.MapDepartments)
				sr.Put("/mission-groups/{id}", h.MissionGroup.UpdateMissionGroup)
				sr.Delete("/mission-groups/{id}", h.MissionGroup.DeleteMissionGroup)

				sr.Get("/users", h.User.ListUsers)
				sr.Get("/users/{id}", h.User.GetUser)
				sr.Patch("/users/{id}/status", h.User.UpdateUserStatus)
				sr.Delete("/users/{id}", h.User.DeleteUser)

				sr.Get("/applications", h.Application.ListApplications)
				sr.Get("/applications/export", h.Application.ExportApplications)
				sr.Put("/applications/{id}", h.Application.UpdateApplication)
				sr.Patch("/applications/{id}/status", h.Application.UpdateApplicationStatus)
				sr.Delete("/applications/{id}", h.Application.DeleteApplication)
				sr.Get("/applications/{id}/pdf", h.Application.DownloadPDF)
				sr.Delete("/applications/{id}/documents/{documentID}", h.Application.DeleteDocument)

				sr.Get("/resumes", h.Resume.ListResumes)
				sr.Put("/resumes/{id}", h.Resume.UpdateResume)
				sr.Patch("/resumes/{id}/status", h.Resume.UpdateResumeStatus)
				sr.Delete("/resumes/{id}", h.Resume.DeleteResume)
				sr.Delete("/resumes/{id}/documents/{documentID}", h.Resume.DeleteDocument)

				sr.Get("/contract-renewals", h.ContractRenewal.ListRenewals)
				sr.Post("/contract-renewals", h.ContractRenewal.CreateRenewal)
				sr.Get("/contract-renewals/{id}", h.ContractRenewal.GetRenewal)
				sr.Put("/contract-renewals/{id}", h.ContractRenewal.UpdateRenewal)
				sr.Patch("/contract-renewals/{id}/status", h.ContractRenewal.UpdateRenewalStatus)
				sr.Delete("/contract-renewals/{id}", h.ContractRenewal.DeleteRenewal)
				sr.Post("/contract-renewals/{id}/attachments", h.ContractRenewal.UploadAttachment)
				sr.Delete("/contract-renewals/{id}/attachments/{attachmentID}", h.ContractRenewal.DeleteAttachment)
			})
		})
	})
}
