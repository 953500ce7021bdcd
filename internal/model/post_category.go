package model

import "time"

const (
	CategoryTypeNews         = "news"
	CategoryTypeAnnouncement = "announcement"
	CategoryTypeReport       = "report"
	CategoryTypeMedia        = "media"
)

// CategoryTypeLabels display names of the category kinds
var CategoryTypeLabels = map[string]string{
	CategoryTypeNews:         "News",
	CategoryTypeAnnouncement: "Official Announcement",
	CategoryTypeReport:       "Report",
	CategoryTypeMedia:        "Media/Video",
}

type PostCategory struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex:idx_post_categories_name;not null" json:"name"`
	Type        string    `gorm:"type:varchar(20);not null;index" json:"type"`
	Description *string   `gorm:"type:text" json:"description"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (PostCategory) TableName() string {
	return "PostCategories"
}

func (c *PostCategory) Validate() error {
	if _, ok := CategoryTypeLabels[c.Type]; !ok {
		return ErrInvalidCategoryType
	}
	return nil
}

func IsCategoryType(t string) bool {
	_, ok := CategoryTypeLabels[t]
	return ok
}

func (c *PostCategory) AuditID() any { return c.ID }

func (c *PostCategory) AuditName() string { return c.Name }
