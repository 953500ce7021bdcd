package service

import (
	"Newsroom/internal/model"
	"Newsroom/internal/repository"
	"context"
	log "log/slog"
	"slices"
)

// PermissionGrant outcome of granting permissions to one user.
type PermissionGrant struct {
	Username string
	Before   int64
	After    int64
	Granted  int
}

type PermissionService interface {
	GrantStaffDefaults(ctx context.Context, userID uint64) (int, error)
	GrantAllStaff(ctx context.Context) ([]PermissionGrant, error)
	AssignViewPerms(ctx context.Context) ([]PermissionGrant, error)
	Codenames(ctx context.Context, userID uint64) ([]string, error)
	HasPermission(ctx context.Context, user *model.User, codename string) (bool, error)
}

type PermissionServiceImpl struct {
	permissionRepo repository.PermissionRepo
	userRepo       repository.UserRepo
}

func NewPermissionService(permissionRepo repository.PermissionRepo, userRepo repository.UserRepo) PermissionService {
	return &PermissionServiceImpl{permissionRepo: permissionRepo, userRepo: userRepo}
}

// GrantStaffDefaults every view/add/change/delete permission outside the system apps.
func (s *PermissionServiceImpl) GrantStaffDefaults(ctx context.Context, userID uint64) (int, error) {
	perms, err := s.permissionRepo.ListGrantable(ctx, model.SystemAppLabels, model.PermissionActions)
	if err != nil {
		return 0, err
	}
	if err = s.permissionRepo.Grant(ctx, userID, permissionIDs(perms)); err != nil {
		return 0, err
	}
	return len(perms), nil
}

func (s *PermissionServiceImpl) GrantAllStaff(ctx context.Context) ([]PermissionGrant, error) {
	return s.grantToStaff(ctx, model.PermissionActions)
}

// AssignViewPerms view and change permissions only.
func (s *PermissionServiceImpl) AssignViewPerms(ctx context.Context) ([]PermissionGrant, error) {
	return s.grantToStaff(ctx, []string{"view", "change"})
}

func (s *PermissionServiceImpl) grantToStaff(ctx context.Context, actions []string) ([]PermissionGrant, error) {
	perms, err := s.permissionRepo.ListGrantable(ctx, model.SystemAppLabels, actions)
	if err != nil {
		return nil, err
	}
	ids := permissionIDs(perms)

	users, err := s.userRepo.ListStaffNonSuperusers(ctx)
	if err != nil {
		return nil, err
	}

	grants := make([]PermissionGrant, 0, len(users))
	for _, u := range users {
		before, err := s.permissionRepo.CountUserPermissions(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if err = s.permissionRepo.Grant(ctx, u.ID, ids); err != nil {
			return nil, err
		}
		after, err := s.permissionRepo.CountUserPermissions(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		log.InfoContext(ctx, "Permissions granted", "username", u.Username, "before", before, "after", after)
		grants = append(grants, PermissionGrant{Username: u.Username, Before: before, After: after, Granted: len(ids)})
	}
	return grants, nil
}

func (s *PermissionServiceImpl) Codenames(ctx context.Context, userID uint64) ([]string, error) {
	return s.permissionRepo.GetUserCodenames(ctx, userID)
}

// HasPermission superusers hold every permission, inactive users none.
func (s *PermissionServiceImpl) HasPermission(ctx context.Context, user *model.User, codename string) (bool, error) {
	if user == nil || !user.IsActive {
		return false, nil
	}
	if user.IsSuperuser {
		return true, nil
	}
	codenames, err := s.permissionRepo.GetUserCodenames(ctx, user.ID)
	if err != nil {
		return false, err
	}
	return slices.Contains(codenames, codename), nil
}

func permissionIDs(perms []*model.Permission) []uint64 {
	ids := make([]uint64, len(perms))
	for i, p := range perms {
		ids[i] = p.ID
	}
	return ids
}
