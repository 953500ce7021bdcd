package model

type UserPermission struct {
	UserID       uint64 `gorm:"primaryKey" json:"user_id"`
	PermissionID uint64 `gorm:"primaryKey;index:idx_permission_id" json:"permission_id"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
