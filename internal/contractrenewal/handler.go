package contractrenewal

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	renewalDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/contractrenewal"
	"github.com/frahmantamala/hospital-careers/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto *RenewalDTO) (*renewalDatamodel.ContractRenewal, error)
	Get(ctx context.Context, id int64) (*renewalDatamodel.ContractRenewal, error)
	List(ctx context.Context, filter ListFilter) (*pagination.Page[*renewalDatamodel.ContractRenewal], error)
	Update(ctx context.Context, id int64, dto *RenewalDTO) (*renewalDatamodel.ContractRenewal, error)
	UpdateStatus(ctx context.Context, id, actorID int64, dto *UpdateStatusDTO) (*renewalDatamodel.ContractRenewal, error)
	Delete(ctx context.Context, id int64) error
	UploadAttachment(ctx context.Context, id int64, fh *multipart.FileHeader) (*renewalDatamodel.Attachment, error)
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

func (h *Handler) CreateRenewal(w http.ResponseWriter, r *http.Request) {
	var dto RenewalDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	c, err := h.Service.Create(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateRenewal: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) ListRenewals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := ParseListFilter(q.Get("status"), q.Get("department"), q.Get("search"), pagination.FromRequest(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	page, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListRenewals: failed to list contract renewals", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetRenewal(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	c, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateRenewal(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto RenewalDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	c, err := h.Service.Update(r.Context(), id, &dto)
	if err != nil {
		h.Logger.Error("UpdateRenewal: service error", "error", err, "contract_renewal_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateRenewalStatus(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.Service.UpdateStatus(r.Context(), id, identity.UserID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, c)
}

func (h *Handler) DeleteRenewal(w http.ResponseWriter, r *http.Request) {
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
