package service

import "github.com/roleplay/roleplay-api/internal/domain"

// Authorization rules. Each returns domain.ErrForbidden when actor may not act.

// CanUpdateUser allows users to edit only their own profile
func CanUpdateUser(actorID int64, user *domain.User) error {
	if actorID != user.ID {
		return domain.ErrForbidden
	}
	return nil
}

// CanUpdateGroup allows only the group master to edit the group
func CanUpdateGroup(actorID int64, group *domain.Group) error {
	return requireMaster(actorID, group)
}

// CanDeleteGroup allows only the group master to delete the group
func CanDeleteGroup(actorID int64, group *domain.Group) error {
	return requireMaster(actorID, group)
}

// CanRemovePlayer allows the master to remove anyone and a player to leave
func CanRemovePlayer(actorID int64, group *domain.Group, playerID int64) error {
	if group.IsMaster(actorID) || actorID == playerID {
		return nil
	}
	return domain.ErrForbidden
}

// CanAcceptGroupRequest allows only the master of the requested group to accept
func CanAcceptGroupRequest(actorID int64, group *domain.Group) error {
	return requireMaster(actorID, group)
}

// CanRejectGroupRequest allows only the master of the requested group to reject
func CanRejectGroupRequest(actorID int64, group *domain.Group) error {
	return requireMaster(actorID, group)
}

func requireMaster(actorID int64, group *domain.Group) error {
	if !group.IsMaster(actorID) {
		return domain.ErrForbidden
	}
	return nil
}
