package handler

import (
	"net/http"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/middleware"
	"github.com/roleplay/roleplay-api/internal/service"
)

// GroupHandler обрабатывает эндпоинты групп
type GroupHandler struct {
	groupService *service.GroupService
	validator    *Validator
}

// NewGroupHandler создает новый GroupHandler
func NewGroupHandler(groupService *service.GroupService, validator *Validator) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		validator:    validator,
	}
}

// CreateGroupRequest представляет тело запроса на создание группы
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Schedule    string `json:"schedule" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Chronicity  string `json:"chronicity" validate:"required"`
	Master      int64  `json:"master" validate:"omitempty,gt=0"`
}

// UpdateGroupRequest представляет тело запроса на частичное изменение группы
type UpdateGroupRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Schedule    *string `json:"schedule" validate:"omitempty,min=1"`
	Location    *string `json:"location" validate:"omitempty,min=1"`
	Chronicity  *string `json:"chronicity" validate:"omitempty,min=1"`
}

// GroupResponse представляет ответ с группой
type GroupResponse struct {
	Group *domain.Group `json:"group"`
}

// ListGroupsResponse представляет ответ со списком групп
type ListGroupsResponse struct {
	Groups []*domain.Group `json:"groups"`
}

// List обрабатывает GET /groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupService.List(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if groups == nil {
		groups = []*domain.Group{}
	}

	RespondWithJSON(w, r, http.StatusOK, ListGroupsResponse{Groups: groups})
}

// Create обрабатывает POST /groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if !h.validator.decodeAndValidate(w, r, &req) {
		return
	}

	group, err := h.groupService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), service.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Schedule:    req.Schedule,
		Location:    req.Location,
		Chronicity:  req.Chronicity,
		Master:      req.Master,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, GroupResponse{Group: group})
}

// Update обрабатывает PATCH /groups/{groupId}
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req UpdateGroupRequest
	if !h.validator.decodeAndValidate(w, r, &req) {
		return
	}

	group, err := h.groupService.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), groupID, domain.GroupUpdate{
		Name:        req.Name,
		Description: req.Description,
		Schedule:    req.Schedule,
		Location:    req.Location,
		Chronicity:  req.Chronicity,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, GroupResponse{Group: group})
}

// Delete обрабатывает DELETE /groups/{groupId}
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.groupService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), groupID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithEmpty(w, r)
}

// RemovePlayer обрабатывает DELETE /groups/{groupId}/players/{playerId}
func (h *GroupHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	playerID, err := pathID(r, "playerId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.groupService.RemovePlayer(r.Context(), middleware.GetUserIDFromContext(r.Context()), groupID, playerID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithEmpty(w, r)
}
