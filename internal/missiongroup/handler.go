package missiongroup

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]MissionGroupResponse, error)
	Get(ctx context.Context, id int64) (*MissionGroupResponse, error)
	Create(ctx context.Context, dto *CreateMissionGroupDTO) (*MissionGroupResponse, error)
	Update(ctx context.Context, id int64, dto *UpdateMissionGroupDTO) (*MissionGroupResponse, error)
	Delete(ctx context.Context, id int64) error
	AssignDepartment(ctx context.Context, departmentID int64, groupID *int64) error
	MapDepartments(ctx context.Context) (*MappingReport, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListMissionGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.List(r.Context())
	if err != nil {
		h.Logger.Error("ListMissionGroups: failed to list mission groups", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, MissionGroupsResponse{MissionGroups: groups})
}

func (h *Handler) GetMissionGroup(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	mg, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, mg)
}

func (h *Handler) CreateMissionGroup(w http.ResponseWriter, r *http.Request) {
	var dto CreateMissionGroupDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	mg, err := h.Service.Create(r.Context(), &dto)
	if err != nil {
		h.Logger.Error("CreateMissionGroup: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, mg)
}

func (h *Handler) UpdateMissionGroup(w http.ResponseWriter, r *http.Request) {
	id, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto UpdateMissionGroupDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	mg, err := h.Service.Update(r.Context(), id, &dto)
	if err != nil {
		h.Logger.Error("UpdateMissionGroup: service error", "error", err, "mission_group_id", id)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, mg)
}

func (h *Handler) DeleteMissionGroup(w http.ResponseWriter, r *http.Request) {
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

// AssignDepartment handles PUT /departments/{id}/mission-group.
func (h *Handler) AssignDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, err := h.PathID(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var dto AssignDepartmentDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if err := h.Service.AssignDepartment(r.Context(), departmentID, dto.MissionGroupID); err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"department_id":    departmentID,
		"mission_group_id": dto.MissionGroupID,
	})
}

func (h *Handler) MapDepartments(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.MapDepartments(r.Context())
	if err != nil {
		h.Logger.Error("MapDepartments: mapping failed", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, report)
}
