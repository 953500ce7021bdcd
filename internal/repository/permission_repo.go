package repository

import (
	"Newsroom/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepo interface {
	ListGrantable(ctx context.Context, excludeApps []string, actions []string) ([]*model.Permission, error)
	GetUserCodenames(ctx context.Context, userID uint64) ([]string, error)
	CountUserPermissions(ctx context.Context, userID uint64) (int64, error)
	Grant(ctx context.Context, userID uint64, permissionIDs []uint64) error
}

type PermissionRepoImpl struct {
	db *gorm.DB
}

func NewPermissionRepo(db *gorm.DB) PermissionRepo {
	return &PermissionRepoImpl{db: db}
}

// ListGrantable permissions outside excludeApps whose codename starts with one of actions.
func (s *PermissionRepoImpl) ListGrantable(ctx context.Context, excludeApps []string, actions []string) ([]*model.Permission, error) {
	db := s.db.WithContext(ctx).Model(&model.Permission{})
	if len(excludeApps) > 0 {
		db = db.Where("app_label NOT IN ?", excludeApps)
	}
	if len(actions) > 0 {
		or := s.db.Where("codename LIKE ?", actions[0]+"_%")
		for _, a := range actions[1:] {
			or = or.Or("codename LIKE ?", a+"_%")
		}
		db = db.Where(or)
	}
	perms := make([]*model.Permission, 0)
	err := db.Order("app_label ASC, codename ASC").Find(&perms).Error
	return perms, err
}

func (s *PermissionRepoImpl) GetUserCodenames(ctx context.Context, userID uint64) ([]string, error) {
	codenames := make([]string, 0)
	err := s.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Pluck("permissions.codename", &codenames).Error
	return codenames, err
}

func (s *PermissionRepoImpl) CountUserPermissions(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.UserPermission{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Grant links permissions to the user, already granted ones are skipped.
func (s *PermissionRepoImpl) Grant(ctx context.Context, userID uint64, permissionIDs []uint64) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	links := make([]model.UserPermission, len(permissionIDs))
	for i, id := range permissionIDs {
		links[i] = model.UserPermission{UserID: userID, PermissionID: id}
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
