package v1alpha1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/orchestrators/group"
)

// GroupHandlerConfig holds dependencies for the group handler
type GroupHandlerConfig struct {
	GroupService group.Service
}

// Validate ensures all required dependencies are present
func (c *GroupHandlerConfig) Validate() error {
	if c.GroupService == nil {
		return errors.InvalidArgument("group service is required")
	}
	return nil
}

// GroupHandler serves the saved party roster routes.
type GroupHandler struct {
	groupService group.Service
}

// NewGroupHandler creates a new group handler with the given
// configuration
func NewGroupHandler(cfg *GroupHandlerConfig) (*GroupHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &GroupHandler{groupService: cfg.GroupService}, nil
}

type groupRequest struct {
	Name       string                    `json:"name"`
	Characters []entities.GroupCharacter `json:"characters"`
}

type groupResponse struct {
	Group *entities.PlayerGroup `json:"group"`
}

type groupsResponse struct {
	Groups []*entities.PlayerGroup `json:"groups"`
}

// Create handles POST /api/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.groupService.CreateGroup(r.Context(), &group.CreateGroupInput{
		OwnerID:    ownerFromContext(r.Context()),
		Name:       req.Name,
		Characters: req.Characters,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, groupResponse{Group: out.Group})
}

// List handles GET /api/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.groupService.ListGroups(r.Context(), &group.ListGroupsInput{
		OwnerID: ownerFromContext(r.Context()),
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupsResponse{Groups: out.Groups})
}

// Get handles GET /api/groups/{id}
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	out, err := h.groupService.GetGroup(r.Context(), &group.GetGroupInput{
		OwnerID: ownerFromContext(r.Context()),
		GroupID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupResponse{Group: out.Group})
}

// Update handles PUT /api/groups/{id}
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteJSON(w, err)
		return
	}

	out, err := h.groupService.UpdateGroup(r.Context(), &group.UpdateGroupInput{
		OwnerID:    ownerFromContext(r.Context()),
		GroupID:    mux.Vars(r)["id"],
		Name:       req.Name,
		Characters: req.Characters,
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	respondJSON(w, http.StatusOK, groupResponse{Group: out.Group})
}

// Delete handles DELETE /api/groups/{id}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := h.groupService.DeleteGroup(r.Context(), &group.DeleteGroupInput{
		OwnerID: ownerFromContext(r.Context()),
		GroupID: mux.Vars(r)["id"],
	})
	if err != nil {
		errors.WriteJSON(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
