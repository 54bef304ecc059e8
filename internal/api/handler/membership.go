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

type createMembershipRequest struct {
	RoleID string `json:"roleId"`
	UserID string `json:"userId"`
	TeamID string `json:"teamId"`
}

type membershipResponse struct {
	ID        string `json:"id"`
	RoleID    string `json:"roleId"`
	UserID    string `json:"userId"`
	TeamID    string `json:"teamId"`
	CreatedAt string `json:"createdAt"`
}

func toMembershipResponse(m *membership.Membership) membershipResponse {
	return membershipResponse{
		ID:        m.ID.String(),
		RoleID:    m.Role.ID.String(),
		UserID:    m.UserID.String(),
		TeamID:    m.TeamID.String(),
		CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// MembershipHandler handles the membership endpoints.
type MembershipHandler struct {
	memberships *service.Memberships
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(memberships *service.Memberships) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

// Assign handles POST /v1/roles/memberships.
func (h *MembershipHandler) Assign(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateMembershipRequest(validation.CreateMembershipRequest{
		RoleID: req.RoleID,
		UserID: req.UserID,
		TeamID: req.TeamID,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	m := &membership.Membership{
		UserID: uuid.MustParse(req.UserID),
		TeamID: uuid.MustParse(req.TeamID),
		Role:   &role.Role{ID: uuid.MustParse(req.RoleID)},
	}

	if err := h.memberships.AssignRoleToMembership(r.Context(), m); err != nil {
		h.writeAssignError(w, err, m, requestID)
		return
	}

	response.Success(w, http.StatusCreated, toMembershipResponse(m), requestID)
}

// ListByRole handles GET /v1/roles/{id}/memberships.
func (h *MembershipHandler) ListByRole(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	roleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	memberships, err := h.memberships.GetMembershipsByRoleID(r.Context(), roleID)
	if err != nil {
		slog.Error("failed to list memberships", "error", err, "roleId", roleID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list memberships", requestID)
		return
	}

	items := make([]membershipResponse, 0, len(memberships))
	for i := range memberships {
		items = append(items, toMembershipResponse(&memberships[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

func (h *MembershipHandler) writeAssignError(w http.ResponseWriter, err error, m *membership.Membership, requestID string) {
	switch {
	case errors.Is(err, service.ErrRoleRequired):
		response.Err(w, http.StatusBadRequest, "ROLE_REQUIRED", "Membership must reference a role", requestID)
	case errors.Is(err, membership.ErrMembershipExists):
		response.Err(w, http.StatusBadRequest, "MEMBERSHIP_EXISTS", "Membership already exists", requestID)
	case errors.Is(err, role.ErrRoleNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Role %s not found", m.Role.ID), requestID)
	case errors.Is(err, service.ErrTeamNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("Team %s not found", m.TeamID), requestID)
	case errors.Is(err, service.ErrUserNotInTeam):
		response.Err(w, http.StatusBadRequest, "USER_NOT_IN_TEAM", "The provided user doesn't belong to the provided team", requestID)
	case errors.Is(err, service.ErrUserNotFound):
		response.Err(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("User %s not found", m.UserID), requestID)
	default:
		slog.Error("failed to assign membership", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to assign membership", requestID)
	}
}
