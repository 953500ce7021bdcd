package model

// SystemAppLabels apps whose permissions are never granted automatically
var SystemAppLabels = []string{"auth", "admin", "contenttypes", "sessions"}

// PermissionActions codename prefixes
var PermissionActions = []string{"view", "add", "change", "delete"}

type Permission struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	Codename string `gorm:"type:varchar(100);uniqueIndex:idx_permission_codename;not null" json:"codename"`
	AppLabel string `gorm:"type:varchar(100);not null;index" json:"app_label"`
	Name     string `gorm:"type:varchar(255)" json:"name"`
}

func (Permission) TableName() string {
	return "permissions"
}

// PermissionModel a model whose permissions live in the catalogue
type PermissionModel struct {
	AppLabel string
	Model    string
	Verbose  string
}

var PermissionModels = []PermissionModel{
	{AppLabel: "posts", Model: "post", Verbose: "post"},
	{AppLabel: "posts", Model: "postcategory", Verbose: "post category"},
	{AppLabel: "logs", Model: "logentry", Verbose: "log entry"},
	{AppLabel: "auth", Model: "user", Verbose: "user"},
}

// PermissionCatalogue every permission the application knows about
func PermissionCatalogue() []Permission {
	perms := make([]Permission, 0, len(PermissionModels)*len(PermissionActions))
	for _, m := range PermissionModels {
		for _, action := range PermissionActions {
			perms = append(perms, Permission{
				Codename: action + "_" + m.Model,
				AppLabel: m.AppLabel,
				Name:     "Can " + action + " " + m.Verbose,
			})
		}
	}
	return perms
}

func Codename(action, model string) string {
	return action + "_" + model
}
