package service

import (
	"context"
	"errors"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/metrics"
	"github.com/roleplay/roleplay-api/internal/repository"
)

// GroupRequestService handles the join request workflow:
// create (PENDING) -> accept (ACCEPTED, user becomes player) or reject (deleted)
type GroupRequestService struct {
	requestRepo repository.GroupRequestRepository
	groupRepo   repository.GroupRepository
	metrics     *metrics.Metrics
}

// NewGroupRequestService creates a new GroupRequestService. m may be nil.
func NewGroupRequestService(
	requestRepo repository.GroupRequestRepository,
	groupRepo repository.GroupRepository,
	m *metrics.Metrics,
) *GroupRequestService {
	return &GroupRequestService{
		requestRepo: requestRepo,
		groupRepo:   groupRepo,
		metrics:     m,
	}
}

// Create files a pending request of userID to join groupID
func (s *GroupRequestService) Create(ctx context.Context, groupID, userID int64) (*domain.GroupRequest, error) {
	exists, err := s.groupRepo.Exists(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrGroupNotFound
	}

	// Duplicate request wins over membership: an accepted request also means membership
	_, err = s.requestRepo.GetByGroupAndUser(ctx, groupID, userID)
	if err == nil {
		return nil, domain.ErrGroupRequestExists
	}
	if !errors.Is(err, domain.ErrGroupRequestNotFound) {
		return nil, err
	}

	isPlayer, err := s.groupRepo.IsPlayer(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if isPlayer {
		return nil, domain.ErrAlreadyInGroup
	}

	req, err := s.requestRepo.Create(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	s.metrics.GroupRequest(metrics.ActionCreated)
	return req, nil
}

// List returns pending requests for every group mastered by masterID
func (s *GroupRequestService) List(ctx context.Context, masterID int64) ([]*domain.GroupRequestListItem, error) {
	if masterID <= 0 {
		return nil, domain.ErrMasterRequired
	}
	return s.requestRepo.ListPendingByMaster(ctx, masterID)
}

// Accept marks the request ACCEPTED and adds the requester to the group's players.
// Only the group master may accept.
func (s *GroupRequestService) Accept(ctx context.Context, actorID, groupID, requestID int64) (*domain.GroupRequest, error) {
	req, group, err := s.load(ctx, groupID, requestID)
	if err != nil {
		return nil, err
	}

	if err := CanAcceptGroupRequest(actorID, group); err != nil {
		return nil, err
	}

	accepted, err := s.requestRepo.Accept(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	s.metrics.GroupRequest(metrics.ActionAccepted)
	return accepted, nil
}

// Reject deletes the request. Only the group master may reject.
func (s *GroupRequestService) Reject(ctx context.Context, actorID, groupID, requestID int64) error {
	req, group, err := s.load(ctx, groupID, requestID)
	if err != nil {
		return err
	}

	if err := CanRejectGroupRequest(actorID, group); err != nil {
		return err
	}

	if err := s.requestRepo.Delete(ctx, req.ID); err != nil {
		return err
	}

	s.metrics.GroupRequest(metrics.ActionRejected)
	return nil
}

// load fetches the request scoped to its group together with the group
func (s *GroupRequestService) load(ctx context.Context, groupID, requestID int64) (*domain.GroupRequest, *domain.Group, error) {
	req, err := s.requestRepo.GetByIDAndGroup(ctx, requestID, groupID)
	if err != nil {
		return nil, nil, err
	}

	group, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, nil, err
	}

	return req, group, nil
}
