package department

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	"github.com/frahmantamala/hospital-careers/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) (*pagination.Page[DepartmentResponse], error)
	ListOpenings(ctx context.Context) (*OpeningsResponse, error)
	Get(ctx context.Context, id int64) (*DepartmentResponse, error)
	Create(ctx context.Context, dto *DepartmentDTO) (*DepartmentResponse, error)
	Update(ctx context.Context, id int64, dto *DepartmentDTO) (*DepartmentResponse, error)
	Delete(ctx context.Context, id int64) error
	UploadAttachment(ctx context.Context, id int64, fh *multipart.FileHeader) (*AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, id, attachmentID int64) error
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

// ListOpenings is the public job board.
func (h *Handler) ListOpenings(w http.ResponseWriter, r *http.Request) {
	openings, err := h.Service.ListOpenings(r.Context())
	if err != nil {
		h.Logger.Error("ListOpenings: failed to list openings", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, openings)
}

func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	missionGroupID, err := h.QueryID(r, "mission_group_id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	q := r.URL.Query()
	filter, err := ParseListFilter(q.Get("status"), q.Get("search"), missionGroupID, pagination.FromRequest(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	page, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListDepartments: failed to list departments", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	d, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var dto DepartmentDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	d, err := h.Service.Create(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateDepartment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto DepartmentDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	d, err := h.Service.Update(r.Context(), id, &dto)
	if err != nil {
		h.Logger.Error("UpdateDepartment: service error", "error", err, "department_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
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

func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
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
	a, err := h.Service.UploadAttachment(r.Context(), id, fh)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	attachmentID, err := h.PathID(r, "attachmentID")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.DeleteAttachment(r.Context(), id, attachmentID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
