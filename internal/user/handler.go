package user

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	userDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/user"
	"github.com/frahmantamala/hospital-careers/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
	Me(ctx context.Context, identity *internal.Identity) (*userDatamodel.User, error)
	Register(ctx context.Context, identity *internal.Identity, dto *ProfileDTO) (*userDatamodel.User, error)
	UpdateProfile(ctx context.Context, userID int64, dto *ProfileDTO) (*userDatamodel.User, error)
	List(ctx context.Context, filter ListFilter) (*pagination.Page[*userDatamodel.User], error)
	UpdateStatus(ctx context.Context, id int64, dto *UpdateStatusDTO) (*userDatamodel.User, error)
	Delete(ctx context.Context, id int64) error
	UploadProfileImage(ctx context.Context, userID int64, fh *multipart.FileHeader) (*userDatamodel.User, error)
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

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	u, err := h.Service.Me(r.Context(), identity)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	var dto ProfileDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	u, err := h.Service.Register(r.Context(), identity, &dto)
	if err != nil {
		h.Logger.Error("Register: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	me, err := h.Service.Me(r.Context(), identity)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto ProfileDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	u, err := h.Service.UpdateProfile(r.Context(), me.ID, &dto)
	if err != nil {
		h.Logger.Error("UpdateProfile: service error", "error", err, "user_id", me.ID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	me, err := h.Service.Me(r.Context(), identity)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	fh, err := attachment.FormFile(w, r, "image", h.UploadLimit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	u, err := h.Service.UploadProfileImage(r.Context(), me.ID, fh)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := ParseListFilter(q.Get("role"), q.Get("status"), q.Get("search"), pagination.FromRequest(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	page, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListUsers: failed to list users", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	u, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
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
	u, err := h.Service.UpdateStatus(r.Context(), id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
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
