package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecore/roles/internal/api/middleware"
	"github.com/ecore/roles/internal/api/response"
	"github.com/ecore/roles/internal/api/validation"
	"github.com/ecore/roles/internal/membership"
	"github.com/ecore/roles/internal/role"
	"github.com/ecore/roles/internal/service"
)

type createRoleRequest struct {
	Name string `json:"name"`
}

type roleResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toRoleResponse(r *role.Role) roleResponse {
	return roleResponse{
		ID:        r.ID.String(),
		Name:      r.Name,
		CreatedAt: r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt: r.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// RoleHandler handles the role endpoints.
type RoleHandler struct {
	roles *service.Roles
}

// NewRoleHandler creates a new RoleHandler.
func NewRoleHandler(roles *service.Roles) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// Create handles POST /v1/roles.
func (h *RoleHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateRoleRequest(validation.CreateRoleRequest{
		Name: req.Name,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	newRole := &role.Role{Name: req.Name}

	if err := h.roles.CreateRole(r.Context(), newRole); err != nil {
		if errors.Is(err, role.ErrRoleExists) {
			response.Err(w, http.StatusBadRequest, "ROLE_EXISTS", "Role already exists", requestID)
			return
		}
		slog.Error("failed to create role", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create role", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toRoleResponse(newRole), requestID)
}

// List handles GET /v1/roles. Optional teamMemberId and teamId query
// parameters narrow the result to the roles held across the matching
// memberships.
func (h *RoleHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	userID, ok := optionalUUIDParam(w, r, "teamMemberId", requestID)
	if !ok {
		return
	}
	teamID, ok := optionalUUIDParam(w, r, "teamId", requestID)
	if !ok {
		return
	}

	roles, err := h.roles.GetRolesByFilters(r.Context(), userID, teamID)
	if err != nil {
		h.writeError(w, err, requestID)
		return
	}

	items := make([]roleResponse, 0, len(roles))
	for i := range roles {
		items = append(items, toRoleResponse(&roles[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// GetByID handles GET /v1/roles/{id}.
func (h *RoleHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	got, err := h.roles.GetRole(r.Context(), id)
	if err != nil {
		if errors.Is(err, role.ErrRoleNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Role %s not found", id), requestID)
			return
		}
		slog.Error("failed to get role", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get role", requestID)
		return
	}

	response.Success(w, http.StatusOK, toRoleResponse(got), requestID)
}

func (h *RoleHandler) writeError(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Team not found", requestID)
	case errors.Is(err, service.ErrUserNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "User not found", requestID)
	case errors.Is(err, membership.ErrMembershipNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Membership not found", requestID)
	default:
		slog.Error("failed to list roles", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list roles", requestID)
	}
}

// optionalUUIDParam parses an optional UUID query parameter. A missing
// parameter yields (nil, true); a malformed one writes a 400 and yields
// (nil, false).
func optionalUUIDParam(w http.ResponseWriter, r *http.Request, name, requestID string) (*uuid.UUID, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", name+" must be a valid UUID", requestID)
		return nil, false
	}
	return &id, true
}
