package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/frahmantamala/hospital-careers/internal"
	"github.com/frahmantamala/hospital-careers/internal/attachment"
	"github.com/frahmantamala/hospital-careers/internal/core/common/pagination"
	resumeDatamodel "github.com/frahmantamala/hospital-careers/internal/core/datamodel/resume"
	"github.com/frahmantamala/hospital-careers/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, identity *internal.Identity, dto *ResumeDTO, uploads []DocumentUpload) (*resumeDatamodel.ResumeDeposit, error)
	GetFor(ctx context.Context, identity *internal.Identity, id int64) (*resumeDatamodel.ResumeDeposit, error)
	List(ctx context.Context, filter ListFilter) (*pagination.Page[*resumeDatamodel.ResumeDeposit], error)
	Update(ctx context.Context, id int64, dto *ResumeDTO) (*resumeDatamodel.ResumeDeposit, error)
	UpdateStatus(ctx context.Context, id, actorID int64, dto *UpdateStatusDTO) (*resumeDatamodel.ResumeDeposit, error)
	Delete(ctx context.Context, id int64) error
	UploadDocument(ctx context.Context, identity *internal.Identity, id int64, documentType string, fh *multipart.FileHeader) (*resumeDatamodel.Document, error)
	DeleteDocument(ctx context.Context, id, documentID int64) error
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

// CreateResume accepts either a JSON body or a multipart form with the JSON
// in "payload", files in "documents" and their types in "document_types".
func (h *Handler) CreateResume(w http.ResponseWriter, r *http.Request) {
	identity, _ := internal.IdentityFromContext(r.Context())
	var (
		dto     ResumeDTO
		uploads []DocumentUpload
	)
	if attachment.IsMultipart(r) {
		form, err := attachment.MultipartForm(w, r, h.UploadLimit*MaxCreateDocuments)
		if err != nil {
			h.HandleServiceError(w, err)
			return
		}
		defer func() { _ = form.RemoveAll() }()
		if uploads, err = readDeposit(form, &dto); err != nil {
			h.HandleServiceError(w, err)
			return
		}
	} else if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	d, err := h.Service.Create(r.Context(), identity, &dto, uploads)
	if err != nil {
		h.Logger.Error("CreateResume: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, d)
}

func readDeposit(form *multipart.Form, dto *ResumeDTO) ([]DocumentUpload, error) {
	payload := form.Value["payload"]
	if len(payload) != 1 {
		return nil, internal.NewValidationFieldError("payload", "payload must hold the deposit as JSON", internal.ErrCodeValidationFailed)
	}
	dec := json.NewDecoder(strings.NewReader(payload[0]))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dto); err != nil {
		return nil, internal.NewValidationFieldError("payload", fmt.Sprintf("invalid payload: %s", err.Error()), internal.ErrCodeValidationFailed).WithCause(err)
	}

	files, types := form.File["documents"], form.Value["document_types"]
	if len(types) > 0 && len(types) != len(files) {
		return nil, internal.NewValidationFieldError("document_types", "send one document type per document", internal.ErrCodeValidationFailed)
	}
	uploads := make([]DocumentUpload, 0, len(files))
	for i, fh := range files {
		u := DocumentUpload{File: fh}
		if len(types) > 0 {
			u.DocumentType = types[i]
		}
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func (h *Handler) ListResumes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, err := ParseListFilter(q.Get("status"), q.Get("search"), pagination.FromRequest(r))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	page, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListResumes: failed to list resumes", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) ListMyResumes(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	if identity.UserID <= 0 {
		h.HandleServiceError(w, internal.ErrUserNotFound)
		return
	}
	q := r.URL.Query()
	filter, err := ParseListFilter(q.Get("status"), q.Get("search"), pagination.FromRequest(r))
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

func (h *Handler) GetResume(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	d, err := h.Service.GetFor(r.Context(), identity, id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) UpdateResume(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto ResumeDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	d, err := h.Service.Update(r.Context(), id, &dto)
	if err != nil {
		h.Logger.Error("UpdateResume: service error", "error", err, "resume_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) UpdateResumeStatus(w http.ResponseWriter, r *http.Request) {
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
	d, err := h.Service.UpdateStatus(r.Context(), id, identity.UserID, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) DeleteResume(w http.ResponseWriter, r *http.Request) {
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
