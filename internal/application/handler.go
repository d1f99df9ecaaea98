package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	applicationDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/application"
	"github.com/frahmantamala/hospital-careers/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, identity *internal.Identity, dto *ApplicationDTO) (*applicationDatamodel.ApplicationForm, error)
	GetFor(ctx context.Context, identity *internal.Identity, id int64) (*applicationDatamodel.ApplicationForm, error)
	List(ctx context.Context, filter ListFilter) (*pagination.Page[*applicationDatamodel.ApplicationForm], error)
	Update(ctx context.Context, id int64, dto *ApplicationDTO) (*applicationDatamodel.ApplicationForm, error)
	UpdateStatus(ctx context.Context, id, actorID int64, dto *UpdateStatusDTO) (*applicationDatamodel.ApplicationForm, error)
	Delete(ctx context.Context, id int64) error
	UploadDocument(ctx context.Context, identity *internal.Identity, id int64, documentType string, fh *multipart.FileHeader) (*applicationDatamodel.Document, error)
	DeleteDocument(ctx context.Context, id, documentID int64) error
	RenderPDF(ctx context.Context, id int64, w io.Writer) error
	Export(ctx context.Context, filter ListFilter, w io.Writer) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Service     ServiceAPI
	UploadLimit int64
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, uploadLimit int64) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		UploadLimit: uploadLimit,
	}
}

func (h *Handler) CreateApplication(w http.ResponseWriter, r *http.Request) {
	identity, _ := internal.IdentityFromContext(r.Context())
	var dto ApplicationDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	a, err := h.Service.Create(r.Context(), identity, &dto)
	if err != nil {
		h.Logger.Error("CreateApplication: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) parseFilter(r *http.Request) (ListFilter, error) {
	departmentID, err := h.QueryID(r, "department_id")
	if err != nil {
		return ListFilter{}, err
	}
	q := r.URL.Query()
	return ParseListFilter(q.Get("status"), q.Get("search"), departmentID, pagination.FromRequest(r))
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	page, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListApplications: failed to list applications", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

// ListMyApplications lists the caller's own forms.
func (h *Handler) ListMyApplications(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	if identity.UserID <= 0 {
		h.HandleServiceError(w, internal.ErrUserNotFound)
		return
	}
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	filter.UserID = &identity.UserID
	page, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	a, err := h.Service.GetFor(r.Context(), identity, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto ApplicationDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	a, err := h.Service.Update(r.Context(), id, &dto)
	if err != nil {
		h.Logger.Error("UpdateApplication: service error", "error", err, "application_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto UpdateStatusDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	a, err := h.Service.UpdateStatus(r.Context(), id, identity.UserID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	fh, err := attachment.FormFile(w, r, "file", h.UploadLimit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	d, err := h.Service.UploadDocument(r.Context(), identity, id, r.FormValue("document_type"), fh)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	documentID, err := h.PathID(r, "documentID")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.DeleteDocument(r.Context(), id, documentID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := h.Service.RenderPDF(r.Context(), id, &buf); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="application-%d.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) ExportApplications(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var buf bytes.Buffer
	if _, err := h.Service.Export(r.Context(), filter, &buf); err != nil {
		h.Logger.Error("ExportApplications: export failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, ExportFileName(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
