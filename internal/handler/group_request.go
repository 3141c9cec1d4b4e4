package handler

import (
	"net/http"
	"strconv"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/middleware"
	"github.com/roleplay/roleplay-api/internal/service"
)

// GroupRequestHandler обрабатывает заявки на вступление в группу
type GroupRequestHandler struct {
	requestService *service.GroupRequestService
}

// NewGroupRequestHandler создает новый GroupRequestHandler
func NewGroupRequestHandler(requestService *service.GroupRequestService) *GroupRequestHandler {
	return &GroupRequestHandler{
		requestService: requestService,
	}
}

// GroupRequestResponse представляет ответ с заявкой
type GroupRequestResponse struct {
	GroupRequest *domain.GroupRequest `json:"groupRequest"`
}

// ListGroupRequestsResponse представляет ответ со списком заявок мастера
type ListGroupRequestsResponse struct {
	GroupRequests []*domain.GroupRequestListItem `json:"groupRequests"`
}

// Create обрабатывает POST /groups/{groupId}/requests
func (h *GroupRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	request, err := h.requestService.Create(r.Context(), groupID, middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, GroupRequestResponse{GroupRequest: request})
}

// List обрабатывает GET /groups/{groupId}/requests?master=...
// Заявки фильтруются только по мастеру, groupId в пути не учитывается.
func (h *GroupRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	// Отсутствующий master превращается в 0 и отклоняется сервисом
	var masterID int64
	if raw := r.URL.Query().Get("master"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			HandleError(w, r, domain.ErrInvalidMaster)
			return
		}
		masterID = parsed
	}

	requests, err := h.requestService.List(r.Context(), masterID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if requests == nil {
		requests = []*domain.GroupRequestListItem{}
	}

	RespondWithJSON(w, r, http.StatusOK, ListGroupRequestsResponse{GroupRequests: requests})
}

// Accept обрабатывает POST /groups/{groupId}/requests/{requestId}/accept
func (h *GroupRequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	groupID, requestID, ok := h.ids(w, r)
	if !ok {
		return
	}

	request, err := h.requestService.Accept(r.Context(), middleware.GetUserIDFromContext(r.Context()), groupID, requestID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, GroupRequestResponse{GroupRequest: request})
}

// Reject обрабатывает DELETE /groups/{groupId}/requests/{requestId}
func (h *GroupRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	groupID, requestID, ok := h.ids(w, r)
	if !ok {
		return
	}

	if err := h.requestService.Reject(r.Context(), middleware.GetUserIDFromContext(r.Context()), groupID, requestID); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithEmpty(w, r)
}

func (h *GroupRequestHandler) ids(w http.ResponseWriter, r *http.Request) (groupID, requestID int64, ok bool) {
	groupID, err := pathID(r, "groupId")
	if err != nil {
		HandleError(w, r, err)
		return 0, 0, false
	}

	requestID, err = pathID(r, "requestId")
	if err != nil {
		HandleError(w, r, err)
		return 0, 0, false
	}

	return groupID, requestID, true
}
