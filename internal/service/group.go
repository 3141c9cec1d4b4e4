package service

import (
	"context"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/repository"
)

// CreateGroupInput holds validated data for a new group
type CreateGroupInput struct {
	Name        string
	Description string
	Schedule    string
	Location    string
	Chronicity  string
	Master      int64 // zero means the actor becomes master
}

// GroupService handles business logic for groups and their players
type GroupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService creates a new GroupService
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{
		groupRepo: groupRepo,
	}
}

// List returns all groups with players and master
func (s *GroupService) List(ctx context.Context) ([]*domain.Group, error) {
	return s.groupRepo.List(ctx)
}

// Create creates a group; its master is added as the first player
func (s *GroupService) Create(ctx context.Context, actorID int64, in CreateGroupInput) (*domain.Group, error) {
	master := in.Master
	if master == 0 {
		master = actorID
	}

	group := &domain.Group{
		Name:        in.Name,
		Description: in.Description,
		Schedule:    in.Schedule,
		Location:    in.Location,
		Chronicity:  in.Chronicity,
		Master:      master,
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}

	// Reload to return players
	return s.groupRepo.GetByID(ctx, group.ID)
}

// Update applies a partial update; only the master may edit
func (s *GroupService) Update(ctx context.Context, actorID, groupID int64, upd domain.GroupUpdate) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := CanUpdateGroup(actorID, group); err != nil {
		return nil, err
	}

	upd.Apply(group)

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

// RemovePlayer removes a player from the group. The master cannot be removed.
func (s *GroupService) RemovePlayer(ctx context.Context, actorID, groupID, playerID int64) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if group.IsMaster(playerID) {
		return domain.ErrCannotRemoveMaster
	}

	if err := CanRemovePlayer(actorID, group, playerID); err != nil {
		return err
	}

	return s.groupRepo.RemovePlayer(ctx, groupID, playerID)
}

// Delete deletes the group; only the master may delete
func (s *GroupService) Delete(ctx context.Context, actorID, groupID int64) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}

	if err := CanDeleteGroup(actorID, group); err != nil {
		return err
	}

	return s.groupRepo.Delete(ctx, groupID)
}
