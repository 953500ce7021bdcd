package database

import (
	"Newsroom/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models every table owned by the application, in dependency order.
func Models() []any {
	return []any{
		&model.PostCategory{},
		&model.Post{},
		&model.User{},
		&model.Permission{},
		&model.UserPermission{},
		&model.LogEntry{},
	}
}

// Migrate creates or updates the schema and seeds the permission catalogue.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return SeedPermissions(ctx, db)
}

// SeedPermissions inserts missing catalogue entries, existing rows are left alone.
func SeedPermissions(ctx context.Context, db *gorm.DB) error {
	perms := model.PermissionCatalogue()
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "codename"}}, DoNothing: true}).
		Create(&perms).Error
	if err != nil {
		return fmt.Errorf("seed permissions: %w", err)
	}
	return nil
}
